package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"priceghost/internal/client"
	"priceghost/internal/database"
	pglogger "priceghost/internal/logger"
	"priceghost/internal/model"
)

// fakeStore is an in-memory store used by the server tests. Methods lock
// because the sweep runs them from concurrent goroutines.
type fakeStore struct {
	mu           sync.Mutex
	products     map[primitive.ObjectID]model.Product
	observations []model.PriceObservation
	alerts       []model.Alert
	users        map[primitive.ObjectID]model.User
	emailLogs    []database.EmailLog
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products: map[primitive.ObjectID]model.Product{},
		users:    map[primitive.ObjectID]model.User{},
	}
}

func (fs *fakeStore) addUser(u model.User) model.User {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	fs.users[u.ID] = u
	return u
}

func (fs *fakeStore) addProduct(p model.Product) model.Product {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	fs.products[p.ID] = p
	return p
}

func (fs *fakeStore) ProductInsert(_ context.Context, p model.Product) (string, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	for id, existing := range fs.products {
		if existing.UserID == p.UserID && existing.URL == p.URL {
			return id.Hex(), database.ErrProductExists
		}
	}
	p.ID = primitive.NewObjectID()
	p.CreatedAt = primitive.NewDateTimeFromTime(time.Now())
	p.UpdatedAt = p.CreatedAt
	fs.products[p.ID] = p
	return p.ID.Hex(), nil
}

func (fs *fakeStore) ProductFindOne(_ context.Context, productID primitive.ObjectID, userID primitive.ObjectID) (model.Product, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	p, ok := fs.products[productID]
	if !ok || p.UserID != userID {
		return model.Product{}, errors.Errorf("Product not found, ID: %s", productID.Hex())
	}
	return p, nil
}

func (fs *fakeStore) ProductsFind(_ context.Context, productIDs []primitive.ObjectID, userID primitive.ObjectID) ([]model.Product, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	var ps []model.Product
	for _, id := range productIDs {
		if p, ok := fs.products[id]; ok && p.UserID == userID {
			ps = append(ps, p)
		}
	}
	return ps, nil
}

func (fs *fakeStore) ProductsFindByUser(_ context.Context, userID primitive.ObjectID) ([]model.Product, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	var ps []model.Product
	for _, p := range fs.products {
		if p.UserID == userID {
			ps = append(ps, p)
		}
	}
	return ps, nil
}

func (fs *fakeStore) ProductsFindActive(_ context.Context) ([]model.Product, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	var ps []model.Product
	for _, p := range fs.products {
		if p.Active {
			ps = append(ps, p)
		}
	}
	return ps, nil
}

func (fs *fakeStore) ProductPricesUpdate(_ context.Context, p model.Product) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	stored, ok := fs.products[p.ID]
	if !ok {
		return database.ErrNoDocumentsModified
	}
	stored.CurrentPrice = p.CurrentPrice
	stored.LowestPrice = p.LowestPrice
	stored.HighestPrice = p.HighestPrice
	stored.LastChecked = p.LastChecked
	stored.UpdatedAt = p.UpdatedAt
	fs.products[p.ID] = stored
	return nil
}

func (fs *fakeStore) ProductUpdate(_ context.Context, productID primitive.ObjectID, userID primitive.ObjectID, set bson.M) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	p, ok := fs.products[productID]
	if !ok || p.UserID != userID {
		return database.ErrNoDocumentsModified
	}
	if v, ok := set["name"].(string); ok {
		p.Name = v
	}
	if v, ok := set["image_url"].(string); ok {
		p.ImageURL = v
	}
	if v, ok := set["retailer"].(string); ok {
		p.Retailer = v
	}
	if v, ok := set["is_active"].(bool); ok {
		p.Active = v
	}
	if v, ok := set["target_price"]; ok {
		if f, ok := v.(float64); ok {
			p.TargetPrice = &f
		} else {
			p.TargetPrice = nil
		}
	}
	p.UpdatedAt = primitive.NewDateTimeFromTime(time.Now())
	fs.products[productID] = p
	return nil
}

func (fs *fakeStore) ProductsDelete(_ context.Context, productIDs []primitive.ObjectID, userID primitive.ObjectID) (int64, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	deleted := int64(0)
	for _, id := range productIDs {
		p, ok := fs.products[id]
		if !ok || p.UserID != userID {
			continue
		}
		delete(fs.products, id)
		deleted++
		kept := fs.observations[:0]
		for _, o := range fs.observations {
			if o.ProductID != id {
				kept = append(kept, o)
			}
		}
		fs.observations = kept
		keptAlerts := fs.alerts[:0]
		for _, a := range fs.alerts {
			if a.ProductID != id {
				keptAlerts = append(keptAlerts, a)
			}
		}
		fs.alerts = keptAlerts
	}
	return deleted, nil
}

func (fs *fakeStore) ProductsSetActive(_ context.Context, productIDs []primitive.ObjectID, userID primitive.ObjectID, active bool) (int64, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	matched := int64(0)
	for _, id := range productIDs {
		p, ok := fs.products[id]
		if !ok || p.UserID != userID {
			continue
		}
		p.Active = active
		fs.products[id] = p
		matched++
	}
	return matched, nil
}

func (fs *fakeStore) PriceObservationInsert(_ context.Context, po model.PriceObservation) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if po.Timestamp == 0 {
		po.Timestamp = primitive.NewDateTimeFromTime(time.Now())
	}
	fs.observations = append(fs.observations, po)
	return nil
}

func (fs *fakeStore) PriceObservationsFind(_ context.Context, productID primitive.ObjectID, start time.Time) ([]model.PriceObservation, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	var pos []model.PriceObservation
	for _, o := range fs.observations {
		if o.ProductID == productID && !o.Timestamp.Time().Before(start) {
			pos = append(pos, o)
		}
	}
	return pos, nil
}

func (fs *fakeStore) PriceObservationsFindSince(_ context.Context, productIDs []primitive.ObjectID, start time.Time) ([]model.PriceObservation, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	ids := map[primitive.ObjectID]bool{}
	for _, id := range productIDs {
		ids[id] = true
	}
	var pos []model.PriceObservation
	for _, o := range fs.observations {
		if ids[o.ProductID] && !o.Timestamp.Time().Before(start) {
			pos = append(pos, o)
		}
	}
	return pos, nil
}

func (fs *fakeStore) AlertsInsert(_ context.Context, as []model.Alert) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.alerts = append(fs.alerts, as...)
	return nil
}

func (fs *fakeStore) AlertsFindByUser(_ context.Context, userID primitive.ObjectID, _ int64) ([]model.Alert, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	var as []model.Alert
	for _, a := range fs.alerts {
		if a.UserID == userID {
			as = append(as, a)
		}
	}
	return as, nil
}

func (fs *fakeStore) AlertsMarkRead(_ context.Context, userID primitive.ObjectID, alertIDs []primitive.ObjectID) (int64, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	ids := map[primitive.ObjectID]bool{}
	for _, id := range alertIDs {
		ids[id] = true
	}
	updated := int64(0)
	for i, a := range fs.alerts {
		if a.UserID != userID || (len(alertIDs) > 0 && !ids[a.ID]) || a.Read {
			continue
		}
		fs.alerts[i].Read = true
		updated++
	}
	return updated, nil
}

func (fs *fakeStore) UserInsert(_ context.Context, u model.User) (string, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	u.ID = primitive.NewObjectID()
	fs.users[u.ID] = u
	return u.ID.Hex(), nil
}

func (fs *fakeStore) UserFindByEmail(_ context.Context, email string) (model.User, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	for _, u := range fs.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, errors.Errorf("User not found, email: %s", email)
}

func (fs *fakeStore) UserFindByID(_ context.Context, id string) (model.User, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return model.User{}, err
	}
	u, ok := fs.users[objID]
	if !ok {
		return model.User{}, errors.Errorf("User not found, ID: %s", id)
	}
	return u, nil
}

func (fs *fakeStore) UsersFindDigestEnabled(_ context.Context) ([]model.User, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	var us []model.User
	for _, u := range fs.users {
		if u.Preferences.DigestEnabled {
			us = append(us, u)
		}
	}
	return us, nil
}

func (fs *fakeStore) UserAddLoginToken(_ context.Context, userID string, lt model.LoginToken) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return err
	}
	u, ok := fs.users[objID]
	if !ok {
		return errors.Errorf("User not found, ID: %s", userID)
	}
	u.LoginTokens = append([]model.LoginToken{lt}, u.LoginTokens...)
	if len(u.LoginTokens) > 8 {
		u.LoginTokens = u.LoginTokens[:8]
	}
	fs.users[objID] = u
	return nil
}

func (fs *fakeStore) UserRemoveLoginToken(_ context.Context, userID string, tokenID string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return err
	}
	u, ok := fs.users[objID]
	if !ok {
		return errors.Errorf("User not found, ID: %s", userID)
	}
	kept := u.LoginTokens[:0]
	for _, lt := range u.LoginTokens {
		if lt.TokenID != tokenID {
			kept = append(kept, lt)
		}
	}
	u.LoginTokens = kept
	fs.users[objID] = u
	return nil
}

func (fs *fakeStore) UserUpdatePreferences(_ context.Context, userID primitive.ObjectID, prefs model.Preferences) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	u, ok := fs.users[userID]
	if !ok {
		return database.ErrNoDocumentsModified
	}
	u.Preferences = prefs
	fs.users[userID] = u
	return nil
}

func (fs *fakeStore) UserSetLastDigestSent(_ context.Context, userID primitive.ObjectID, sentAt time.Time) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	u, ok := fs.users[userID]
	if !ok {
		return database.ErrNoDocumentsModified
	}
	dt := primitive.NewDateTimeFromTime(sentAt)
	u.Preferences.LastDigestSent = &dt
	fs.users[userID] = u
	return nil
}

func (fs *fakeStore) EmailLogInsert(_ context.Context, el database.EmailLog) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.emailLogs = append(fs.emailLogs, el)
	return nil
}

func newTestServer(fs *fakeStore) Server {
	l := pglogger.NewLogger(pglogger.LevelOff, io.Discard)
	return Server{
		DB: fs,
		Client: client.Client{
			Client:     &http.Client{Timeout: 5 * time.Second},
			Logger:     l,
			UserAgents: []string{"test-agent"},
		},
		Logger:         l,
		SweepBatchSize: 2,
	}
}

func floatPtr(f float64) *float64 {
	return &f
}

func productPage(name string, price float64) string {
	return fmt.Sprintf(`<html><head><script type="application/ld+json">
		{"@type": "Product", "name": %q, "offers": {"price": %.2f, "priceCurrency": "USD"}}
		</script></head><body></body></html>`, name, price)
}
