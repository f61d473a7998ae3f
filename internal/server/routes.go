package server

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (s Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.loggingMw, s.maxBytesMw)
	r.NotFoundHandler = s.notFoundHandler()

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/user/register", s.userRegister()).Methods(http.MethodPost)
	api.HandleFunc("/user/login", s.userLogin()).Methods(http.MethodPost)

	userAPI := api.PathPrefix("/user").Subrouter()
	userAPI.Use(s.authMw)
	userAPI.HandleFunc("/logout", s.userLogout()).Methods(http.MethodPost)
	userAPI.HandleFunc("/info", s.userInfo()).Methods(http.MethodGet)
	userAPI.HandleFunc("/settings", s.userSettingsGet()).Methods(http.MethodGet)
	userAPI.HandleFunc("/settings", s.userSettingsUpdate()).Methods(http.MethodPost)
	userAPI.PathPrefix("").Handler(http.NotFoundHandler())

	productAPI := api.PathPrefix("/product").Subrouter()
	productAPI.Use(s.authMw)
	productAPI.HandleFunc("/add", s.productAdd()).Methods(http.MethodPost)
	productAPI.HandleFunc("/check", s.productCheck()).Methods(http.MethodPost)
	productAPI.HandleFunc("/refresh", s.productRefresh()).Methods(http.MethodPost)
	productAPI.HandleFunc("/update", s.productUpdate()).Methods(http.MethodPost)
	productAPI.HandleFunc("/remove", s.productRemove()).Methods(http.MethodPost)
	productAPI.HandleFunc("/bulk", s.productBulk()).Methods(http.MethodPost)
	productAPI.HandleFunc("/get/{productID}", s.productGetOne()).Methods(http.MethodGet)
	productAPI.HandleFunc("/get", s.productGetAll()).Methods(http.MethodGet)
	productAPI.HandleFunc("/history/{productID}", s.productHistory()).Methods(http.MethodGet)
	productAPI.PathPrefix("").Handler(http.NotFoundHandler())

	alertAPI := api.PathPrefix("/alert").Subrouter()
	alertAPI.Use(s.authMw)
	alertAPI.HandleFunc("/get", s.alertGetAll()).Methods(http.MethodGet)
	alertAPI.HandleFunc("/read", s.alertRead()).Methods(http.MethodPost)
	alertAPI.PathPrefix("").Handler(http.NotFoundHandler())

	cronAPI := api.PathPrefix("/cron").Subrouter()
	cronAPI.Use(s.cronAuthMw)
	cronAPI.HandleFunc("/check-prices", s.cronCheckPrices()).Methods(http.MethodGet)
	cronAPI.HandleFunc("/weekly-digest", s.cronWeeklyDigest()).Methods(http.MethodGet)
	cronAPI.PathPrefix("").Handler(http.NotFoundHandler())

	return r
}
