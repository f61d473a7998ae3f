package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"priceghost/internal/database"
	"priceghost/internal/model"
)

const defaultHistoryDays = 90

type productResponse struct {
	ProductID string `json:"product_id"`
	model.Product
}

func toProductResponse(p model.Product) productResponse {
	return productResponse{ProductID: p.ID.Hex(), Product: p}
}

func validProductURL(rawURL string) bool {
	u, err := url.ParseRequestURI(rawURL)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func (s Server) productAdd() http.HandlerFunc {
	type request struct {
		URL         string   `json:"url"`
		TargetPrice *float64 `json:"target_price"`
	}
	type response struct {
		Success   bool   `json:"success"`
		ProductID string `json:"product_id"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		uc, err := getUserContext(r.Context())
		if err != nil {
			s.Logger.Errorf("productAdd: Error getting userContext, err: %v", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		req := request{}
		if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.Logger.Debugf("productAdd: Error decoding JSON, err: %v", err)
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if !validProductURL(req.URL) {
			http.Error(w, "Invalid url", http.StatusBadRequest)
			return
		}

		res := s.Client.ScrapeProduct(r.Context(), req.URL, true)
		if !res.Success {
			s.Logger.Debugf("productAdd: Scrape failed for URL: %s, err: %s", req.URL, res.Error)
			s.writeJsonResponse(w, res, http.StatusBadGateway)
			return
		}

		name := res.Name
		if name == "" {
			name = "Unknown Product"
		}
		now := primitive.NewDateTimeFromTime(time.Now())
		p := model.Product{
			UserID:      uc.user.ID,
			URL:         req.URL,
			Name:        name,
			ImageURL:    res.ImageURL,
			Currency:    res.Currency,
			Retailer:    res.Retailer,
			TargetPrice: req.TargetPrice,
			Active:      true,
			LastChecked: &now,
		}
		if res.Price != nil {
			price := *res.Price
			p.CurrentPrice = &price
			p.OriginalPrice = price
			low, high := price, price
			p.LowestPrice = &low
			p.HighestPrice = &high
		}

		id, err := s.DB.ProductInsert(r.Context(), p)
		if err != nil {
			if errors.Is(err, database.ErrProductExists) {
				s.Logger.Debugf("productAdd: Product already tracked, URL: %s, ID: %s", req.URL, id)
				http.Error(w, "Product already tracked", http.StatusConflict)
				return
			}
			s.Logger.Errorf("productAdd: Error inserting Product, err: %v", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		if res.Price != nil {
			productID, _ := primitive.ObjectIDFromHex(id)
			if err = s.DB.PriceObservationInsert(r.Context(), model.PriceObservation{
				ProductID: productID,
				Price:     *res.Price,
				Currency:  res.Currency,
			}); err != nil {
				s.Logger.Errorf("productAdd: Error inserting PriceObservation, err: %v", err)
			}
		}

		s.writeJsonResponse(w, response{Success: true, ProductID: id}, http.StatusCreated)
	}
}

// productCheck scrapes a URL on demand without persisting anything. The
// response body is the extraction result itself.
func (s Server) productCheck() http.HandlerFunc {
	type request struct {
		URL string `json:"url"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		req := request{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.Logger.Debugf("productCheck: Error decoding JSON, err: %v", err)
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if !validProductURL(req.URL) {
			http.Error(w, "Invalid url", http.StatusBadRequest)
			return
		}
		res := s.Client.ScrapeProduct(r.Context(), req.URL, true)
		s.writeJsonResponse(w, res, http.StatusOK)
	}
}

func (s Server) productRefresh() http.HandlerFunc {
	type request struct {
		ProductID string `json:"product_id"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		uc, err := getUserContext(r.Context())
		if err != nil {
			s.Logger.Errorf("productRefresh: Error getting userContext, err: %v", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		req := request{}
		if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.Logger.Debugf("productRefresh: Error decoding JSON, err: %v", err)
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		productID, err := primitive.ObjectIDFromHex(req.ProductID)
		if err != nil {
			http.Error(w, "Invalid product_id", http.StatusBadRequest)
			return
		}

		p, err := s.DB.ProductFindOne(r.Context(), productID, uc.user.ID)
		if err != nil {
			s.Logger.Debugf("productRefresh: Error finding Product, err: %v", err)
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}

		res := s.Client.ScrapeProduct(r.Context(), p.URL, false)
		if _, err = s.processScrapedPrice(r.Context(), &p, res); err != nil {
			s.Logger.Warnf("productRefresh: Error processing scraped price, err: %v", err)
			http.Error(w, "Failed to refresh product price", http.StatusBadGateway)
			return
		}
		s.writeJsonResponse(w, toProductResponse(p), http.StatusOK)
	}
}

func (s Server) productUpdate() http.HandlerFunc {
	type request struct {
		ProductID   string   `json:"product_id"`
		Name        *string  `json:"name"`
		TargetPrice *float64 `json:"target_price"`
		IsActive    *bool    `json:"is_active"`
	}
	type response struct {
		Success bool `json:"success"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		uc, err := getUserContext(r.Context())
		if err != nil {
			s.Logger.Errorf("productUpdate: Error getting userContext, err: %v", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		req := request{}
		if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.Logger.Debugf("productUpdate: Error decoding JSON, err: %v", err)
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		productID, err := primitive.ObjectIDFromHex(req.ProductID)
		if err != nil {
			http.Error(w, "Invalid product_id", http.StatusBadRequest)
			return
		}

		set := bson.M{}
		if req.Name != nil && *req.Name != "" {
			set["name"] = *req.Name
		}
		if req.TargetPrice != nil {
			if *req.TargetPrice > 0 {
				set["target_price"] = *req.TargetPrice
			} else {
				set["target_price"] = nil
			}
		}
		if req.IsActive != nil {
			set["is_active"] = *req.IsActive
		}
		if len(set) == 0 {
			http.Error(w, "Nothing to update", http.StatusBadRequest)
			return
		}

		if err = s.DB.ProductUpdate(r.Context(), productID, uc.user.ID, set); err != nil {
			if errors.Is(err, database.ErrNoDocumentsModified) {
				http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
				return
			}
			s.Logger.Errorf("productUpdate: Error updating Product, err: %v", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		s.writeJsonResponse(w, response{Success: true}, http.StatusOK)
	}
}

func (s Server) productRemove() http.HandlerFunc {
	type request struct {
		ProductID string `json:"product_id"`
	}
	type response struct {
		Success bool `json:"success"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		uc, err := getUserContext(r.Context())
		if err != nil {
			s.Logger.Errorf("productRemove: Error getting userContext, err: %v", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		req := request{}
		if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.Logger.Debugf("productRemove: Error decoding JSON, err: %v", err)
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		productID, err := primitive.ObjectIDFromHex(req.ProductID)
		if err != nil {
			http.Error(w, "Invalid product_id", http.StatusBadRequest)
			return
		}

		deleted, err := s.DB.ProductsDelete(r.Context(), []primitive.ObjectID{productID}, uc.user.ID)
		if err != nil {
			s.Logger.Errorf("productRemove: Error deleting Product, err: %v", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		if deleted == 0 {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}
		s.writeJsonResponse(w, response{Success: true}, http.StatusOK)
	}
}

func (s Server) productBulk() http.HandlerFunc {
	type request struct {
		Action     string   `json:"action"`
		ProductIDs []string `json:"product_ids"`
	}
	type response struct {
		Success int      `json:"success"`
		Failed  int      `json:"failed"`
		Errors  []string `json:"errors"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		uc, err := getUserContext(r.Context())
		if err != nil {
			s.Logger.Errorf("productBulk: Error getting userContext, err: %v", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		req := request{}
		if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.Logger.Debugf("productBulk: Error decoding JSON, err: %v", err)
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if len(req.ProductIDs) == 0 {
			http.Error(w, "Product IDs are required", http.StatusBadRequest)
			return
		}
		productIDs := make([]primitive.ObjectID, 0, len(req.ProductIDs))
		for _, idStr := range req.ProductIDs {
			id, err := primitive.ObjectIDFromHex(idStr)
			if err != nil {
				http.Error(w, "Invalid product_id: "+idStr, http.StatusBadRequest)
				return
			}
			productIDs = append(productIDs, id)
		}

		resp := response{Errors: []string{}}
		switch req.Action {
		case "delete":
			deleted, err := s.DB.ProductsDelete(r.Context(), productIDs, uc.user.ID)
			if err != nil {
				s.Logger.Errorf("productBulk: Error deleting Products, err: %v", err)
				resp.Failed = len(productIDs)
				resp.Errors = append(resp.Errors, err.Error())
			} else {
				resp.Success = int(deleted)
				resp.Failed = len(productIDs) - int(deleted)
			}
		case "activate", "deactivate":
			matched, err := s.DB.ProductsSetActive(r.Context(), productIDs, uc.user.ID, req.Action == "activate")
			if err != nil {
				s.Logger.Errorf("productBulk: Error setting Products active state, err: %v", err)
				resp.Failed = len(productIDs)
				resp.Errors = append(resp.Errors, err.Error())
			} else {
				resp.Success = int(matched)
				resp.Failed = len(productIDs) - int(matched)
			}
		case "refresh", "rescrape":
			ps, err := s.DB.ProductsFind(r.Context(), productIDs, uc.user.ID)
			if err != nil {
				s.Logger.Errorf("productBulk: Error finding Products, err: %v", err)
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			if len(ps) == 0 {
				http.Error(w, "No valid products found", http.StatusNotFound)
				return
			}
			for i := range ps {
				if err := s.bulkScrapeOne(r, &ps[i], req.Action == "rescrape"); err != nil {
					resp.Failed++
					resp.Errors = append(resp.Errors, fmt.Sprintf("%s: %v", ps[i].Name, err))
				} else {
					resp.Success++
				}
			}
		default:
			http.Error(w, "Invalid action", http.StatusBadRequest)
			return
		}
		s.writeJsonResponse(w, resp, http.StatusOK)
	}
}

// bulkScrapeOne re-scrapes one product for a bulk refresh or rescrape. A
// rescrape additionally overwrites the scraped metadata, except currency
// which stays as captured at creation.
func (s Server) bulkScrapeOne(r *http.Request, p *model.Product, rescrape bool) error {
	res := s.Client.ScrapeProduct(r.Context(), p.URL, false)
	if rescrape && res.Success {
		set := bson.M{}
		if res.Name != "" {
			set["name"] = res.Name
			p.Name = res.Name
		}
		if res.ImageURL != "" {
			set["image_url"] = res.ImageURL
			p.ImageURL = res.ImageURL
		}
		if res.Retailer != "" {
			set["retailer"] = res.Retailer
			p.Retailer = res.Retailer
		}
		if len(set) > 0 {
			if err := s.DB.ProductUpdate(r.Context(), p.ID, p.UserID, set); err != nil {
				return err
			}
		}
	}
	_, err := s.processScrapedPrice(r.Context(), p, res)
	return err
}

func (s Server) productGetOne() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uc, err := getUserContext(r.Context())
		if err != nil {
			s.Logger.Errorf("productGetOne: Error getting userContext, err: %v", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		productID, err := primitive.ObjectIDFromHex(mux.Vars(r)["productID"])
		if err != nil {
			http.Error(w, "Invalid product_id", http.StatusBadRequest)
			return
		}

		p, err := s.DB.ProductFindOne(r.Context(), productID, uc.user.ID)
		if err != nil {
			s.Logger.Debugf("productGetOne: Error finding Product, err: %v", err)
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}
		s.writeJsonResponse(w, toProductResponse(p), http.StatusOK)
	}
}

func (s Server) productGetAll() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uc, err := getUserContext(r.Context())
		if err != nil {
			s.Logger.Errorf("productGetAll: Error getting userContext, err: %v", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		ps, err := s.DB.ProductsFindByUser(r.Context(), uc.user.ID)
		if err != nil {
			s.Logger.Errorf("productGetAll: Error finding Products, err: %v", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		resp := make([]productResponse, 0, len(ps))
		for _, p := range ps {
			resp = append(resp, toProductResponse(p))
		}
		s.writeJsonResponse(w, resp, http.StatusOK)
	}
}

func (s Server) productHistory() http.HandlerFunc {
	type response struct {
		ProductID    string                   `json:"product_id"`
		Observations []model.PriceObservation `json:"observations"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		uc, err := getUserContext(r.Context())
		if err != nil {
			s.Logger.Errorf("productHistory: Error getting userContext, err: %v", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		productID, err := primitive.ObjectIDFromHex(mux.Vars(r)["productID"])
		if err != nil {
			http.Error(w, "Invalid product_id", http.StatusBadRequest)
			return
		}

		if _, err = s.DB.ProductFindOne(r.Context(), productID, uc.user.ID); err != nil {
			s.Logger.Debugf("productHistory: Error finding Product, err: %v", err)
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}

		days := defaultHistoryDays
		if d := r.URL.Query().Get("days"); d != "" {
			if _, err := fmt.Sscanf(d, "%d", &days); err != nil || days < 1 {
				http.Error(w, "Invalid days", http.StatusBadRequest)
				return
			}
		}

		pos, err := s.DB.PriceObservationsFind(r.Context(), productID, time.Now().AddDate(0, 0, -days))
		if err != nil {
			s.Logger.Errorf("productHistory: Error finding PriceObservations, err: %v", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		if pos == nil {
			pos = []model.PriceObservation{}
		}
		s.writeJsonResponse(w, response{
			ProductID:    productID.Hex(),
			Observations: pos,
		}, http.StatusOK)
	}
}
