// Package httpapi exposes the REST surface for users, orders and offers.
// Each collection gets list/create endpoints and each item get/replace/
// delete; responses are serialized through the entities' ordered field
// enumeration.
package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	app "github.com/workhands/service_market/internal/app"
	"github.com/workhands/service_market/internal/app/domain/offer"
	"github.com/workhands/service_market/internal/app/domain/order"
	"github.com/workhands/service_market/internal/app/domain/record"
	"github.com/workhands/service_market/internal/app/domain/user"
	"github.com/workhands/service_market/internal/app/metrics"
	"github.com/workhands/service_market/internal/app/storage"
	"github.com/workhands/service_market/internal/httputil"
	"github.com/workhands/service_market/pkg/logger"
)

type handler struct {
	app *app.Application
	log *logger.Logger
}

// NewHandler returns a router exposing the core REST API.
func NewHandler(application *app.Application, log *logger.Logger) *mux.Router {
	if log == nil {
		log = logger.NewDefault("httpapi")
	}
	h := &handler{app: application, log: log}

	r := mux.NewRouter()
	r.HandleFunc("/healthz", h.health).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	r.HandleFunc("/users", h.listUsers).Methods(http.MethodGet)
	r.HandleFunc("/users", h.createUser).Methods(http.MethodPost)
	r.HandleFunc("/users/{id:[0-9]+}", h.getUser).Methods(http.MethodGet)
	r.HandleFunc("/users/{id:[0-9]+}", h.replaceUser).Methods(http.MethodPut)
	r.HandleFunc("/users/{id:[0-9]+}", h.deleteUser).Methods(http.MethodDelete)

	r.HandleFunc("/orders", h.listOrders).Methods(http.MethodGet)
	r.HandleFunc("/orders", h.createOrder).Methods(http.MethodPost)
	r.HandleFunc("/orders/{id:[0-9]+}", h.getOrder).Methods(http.MethodGet)
	r.HandleFunc("/orders/{id:[0-9]+}", h.replaceOrder).Methods(http.MethodPut)
	r.HandleFunc("/orders/{id:[0-9]+}", h.deleteOrder).Methods(http.MethodDelete)

	r.HandleFunc("/offers", h.listOffers).Methods(http.MethodGet)
	r.HandleFunc("/offers", h.createOffer).Methods(http.MethodPost)
	r.HandleFunc("/offers/{id:[0-9]+}", h.getOffer).Methods(http.MethodGet)
	r.HandleFunc("/offers/{id:[0-9]+}", h.replaceOffer).Methods(http.MethodPut)
	r.HandleFunc("/offers/{id:[0-9]+}", h.deleteOffer).Methods(http.MethodDelete)

	return r
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func pathID(r *http.Request) int {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	return id
}

// --- Users --------------------------------------------------------------------

func (h *handler) listUsers(w http.ResponseWriter, r *http.Request) {
	list, err := h.app.Users.List(r.Context())
	if err != nil {
		httputil.WriteStorageError(w, err)
		return
	}
	result := make([]record.Fields, 0, len(list))
	for _, u := range list {
		result = append(result, u.Fields())
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *handler) createUser(w http.ResponseWriter, r *http.Request) {
	u, err := readUser(r)
	if err != nil {
		httputil.WriteStorageError(w, err)
		return
	}
	if _, err := h.app.Users.Create(r.Context(), u); err != nil {
		httputil.WriteStorageError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *handler) getUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.app.Users.Get(r.Context(), pathID(r))
	if err != nil {
		httputil.WriteStorageError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, u.Fields())
}

func (h *handler) replaceUser(w http.ResponseWriter, r *http.Request) {
	u, err := readUser(r)
	if err != nil {
		httputil.WriteStorageError(w, err)
		return
	}
	if err := h.app.Users.Replace(r.Context(), pathID(r), u); err != nil {
		httputil.WriteStorageError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.app.Users.Delete(r.Context(), pathID(r)); err != nil {
		httputil.WriteStorageError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// readUser reads every user column from the payload. The id is assigned by
// the store; supplying one is rejected to keep ids immutable.
func readUser(r *http.Request) (user.User, error) {
	b, err := parseBody(r)
	if err != nil {
		return user.User{}, err
	}
	if b.has("id") {
		return user.User{}, &storage.ValidationError{Field: "id", Reason: "must not be supplied"}
	}

	var u user.User
	if u.FirstName, err = b.String("first_name"); err != nil {
		return user.User{}, err
	}
	if u.LastName, err = b.String("last_name"); err != nil {
		return user.User{}, err
	}
	if u.Age, err = b.Int("age"); err != nil {
		return user.User{}, err
	}
	if u.Email, err = b.String("email"); err != nil {
		return user.User{}, err
	}
	if u.Phone, err = b.String("phone"); err != nil {
		return user.User{}, err
	}
	if u.Role, err = b.String("role"); err != nil {
		return user.User{}, err
	}
	if err := b.rejectUnknown(); err != nil {
		return user.User{}, err
	}
	return u, nil
}

// --- Orders -------------------------------------------------------------------

func (h *handler) listOrders(w http.ResponseWriter, r *http.Request) {
	list, err := h.app.Orders.List(r.Context())
	if err != nil {
		httputil.WriteStorageError(w, err)
		return
	}
	result := make([]record.Fields, 0, len(list))
	for _, o := range list {
		result = append(result, o.Fields())
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *handler) createOrder(w http.ResponseWriter, r *http.Request) {
	o, err := readOrder(r)
	if err != nil {
		httputil.WriteStorageError(w, err)
		return
	}
	if _, err := h.app.Orders.Create(r.Context(), o); err != nil {
		httputil.WriteStorageError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *handler) getOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.app.Orders.Get(r.Context(), pathID(r))
	if err != nil {
		httputil.WriteStorageError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, o.Fields())
}

func (h *handler) replaceOrder(w http.ResponseWriter, r *http.Request) {
	o, err := readOrder(r)
	if err != nil {
		httputil.WriteStorageError(w, err)
		return
	}
	if err := h.app.Orders.Replace(r.Context(), pathID(r), o); err != nil {
		httputil.WriteStorageError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.app.Orders.Delete(r.Context(), pathID(r)); err != nil {
		httputil.WriteStorageError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// readOrder reads every order column from the payload. start_date and
// end_date are each parsed from their own "YYYY-MM-DD" string.
func readOrder(r *http.Request) (order.Order, error) {
	b, err := parseBody(r)
	if err != nil {
		return order.Order{}, err
	}
	if b.has("id") {
		return order.Order{}, &storage.ValidationError{Field: "id", Reason: "must not be supplied"}
	}

	var o order.Order
	if o.Name, err = b.String("name"); err != nil {
		return order.Order{}, err
	}
	if o.Description, err = b.String("description"); err != nil {
		return order.Order{}, err
	}
	if o.StartDate, err = b.Date("start_date"); err != nil {
		return order.Order{}, err
	}
	if o.EndDate, err = b.Date("end_date"); err != nil {
		return order.Order{}, err
	}
	if o.Address, err = b.String("address"); err != nil {
		return order.Order{}, err
	}
	if o.Price, err = b.Int("price"); err != nil {
		return order.Order{}, err
	}
	if o.CustomerID, err = b.Int("customer_id"); err != nil {
		return order.Order{}, err
	}
	if o.ExecutorID, err = b.Int("executor_id"); err != nil {
		return order.Order{}, err
	}
	if err := b.rejectUnknown(); err != nil {
		return order.Order{}, err
	}
	return o, nil
}

// --- Offers -------------------------------------------------------------------

func (h *handler) listOffers(w http.ResponseWriter, r *http.Request) {
	list, err := h.app.Offers.List(r.Context())
	if err != nil {
		httputil.WriteStorageError(w, err)
		return
	}
	result := make([]record.Fields, 0, len(list))
	for _, o := range list {
		result = append(result, o.Fields())
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *handler) createOffer(w http.ResponseWriter, r *http.Request) {
	o, err := readOffer(r)
	if err != nil {
		httputil.WriteStorageError(w, err)
		return
	}
	if _, err := h.app.Offers.Create(r.Context(), o); err != nil {
		httputil.WriteStorageError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *handler) getOffer(w http.ResponseWriter, r *http.Request) {
	o, err := h.app.Offers.Get(r.Context(), pathID(r))
	if err != nil {
		httputil.WriteStorageError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, o.Fields())
}

func (h *handler) replaceOffer(w http.ResponseWriter, r *http.Request) {
	o, err := readOffer(r)
	if err != nil {
		httputil.WriteStorageError(w, err)
		return
	}
	if err := h.app.Offers.Replace(r.Context(), pathID(r), o); err != nil {
		httputil.WriteStorageError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) deleteOffer(w http.ResponseWriter, r *http.Request) {
	if err := h.app.Offers.Delete(r.Context(), pathID(r)); err != nil {
		httputil.WriteStorageError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func readOffer(r *http.Request) (offer.Offer, error) {
	b, err := parseBody(r)
	if err != nil {
		return offer.Offer{}, err
	}
	if b.has("id") {
		return offer.Offer{}, &storage.ValidationError{Field: "id", Reason: "must not be supplied"}
	}

	var o offer.Offer
	if o.OrderID, err = b.Int("order_id"); err != nil {
		return offer.Offer{}, err
	}
	if o.ExecutorID, err = b.Int("executor_id"); err != nil {
		return offer.Offer{}, err
	}
	if err := b.rejectUnknown(); err != nil {
		return offer.Offer{}, err
	}
	return o, nil
}
