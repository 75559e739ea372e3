package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"MoneySmartz/internal/calculator"
	"MoneySmartz/internal/event"
	"MoneySmartz/internal/model"
	"MoneySmartz/internal/sim"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Defaults fill in fields a create request leaves out.
type Defaults struct {
	Name        string
	Age         int
	Cash        decimal.Decimal
	CreditScore int
	Rules       sim.Rules
}

// Handler exposes sessions over JSON.
type Handler struct {
	store    *Store
	metrics  *Metrics
	log      *logrus.Logger
	defaults Defaults
}

func NewHandler(store *Store, m *Metrics, log *logrus.Logger, d Defaults) *Handler {
	return &Handler{store: store, metrics: m, log: log, defaults: d}
}

// Routes builds the router, including /metrics served from g.
func (h *Handler) Routes(g prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(h.latency)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", h.createSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.getSession)
			r.Delete("/", h.deleteSession)
			r.Get("/net-worth", h.netWorth)
			r.Post("/advance", h.advance)
			r.Post("/choices", h.resolveChoice)
			r.Post("/retire", h.retire)

			r.Post("/bank-account", h.openBankAccount)
			r.Post("/bank-account/deposits", h.deposit)
			r.Post("/bank-account/withdrawals", h.withdraw)
			r.Post("/debit-card", h.getDebitCard)
			r.Post("/credit-card", h.applyForCreditCard)
			r.Post("/credit-card/payments", h.payCreditCard)

			r.Post("/loans", h.takeLoan)
			r.Post("/loans/{loanID}/payments", h.payLoan)
			r.Post("/assets", h.buyAsset)
			r.Post("/assets/{assetID}/repair", h.repairAsset)
			r.Post("/items", h.buyItem)

			r.Post("/jobs/search", h.searchJobs)
			r.Post("/jobs/apply", h.applyForJob)
		})
	})
	return r
}

func (h *Handler) latency(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		h.metrics.ObserveRequest(route, r.Method, time.Since(start))
	})
}

// SessionView is the externally visible state of a session.
type SessionView struct {
	ID       uuid.UUID           `json:"id"`
	State    string              `json:"state"`
	Year     int                 `json:"year"`
	Month    int                 `json:"month"`
	Pending  *event.Event        `json:"pending,omitempty"`
	Reason   string              `json:"reason,omitempty"`
	Player   *model.Player       `json:"player"`
	NetWorth calculator.NetWorth `json:"net_worth"`
}

func view(id uuid.UUID, s *sim.Session) SessionView {
	return SessionView{
		ID:       id,
		State:    s.State().String(),
		Year:     s.Year(),
		Month:    s.Month(),
		Pending:  s.Pending(),
		Reason:   s.Reason(),
		Player:   s.Snapshot(),
		NetWorth: s.NetWorth(),
	}
}

// on runs fn against the session named in the URL and writes its result with status.
func (h *Handler) on(w http.ResponseWriter, r *http.Request, status int, fn func(uuid.UUID, *sim.Session) (any, error)) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, fmt.Errorf("%w: session id: %w", sim.ErrValidation, err))
		return
	}
	var out any
	err = h.store.With(id, func(s *sim.Session) error {
		var err error
		out, err = fn(id, s)
		return err
	})
	if err != nil {
		status, _ := statusFor(err)
		entry := h.log.WithError(err).WithFields(logrus.Fields{
			"session":    id,
			"path":       r.URL.Path,
			"request_id": middleware.GetReqID(r.Context()),
		})
		if status >= http.StatusInternalServerError {
			entry.Error("request failed")
		} else {
			entry.Debug("request rejected")
		}
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, status, out)
}

type createSessionRequest struct {
	Name        string           `json:"name"`
	Age         *int             `json:"age"`
	Cash        *decimal.Decimal `json:"cash"`
	CreditScore *int             `json:"credit_score"`
	Seed        *int64           `json:"seed"`
}

func (h *Handler) createSession(w http.ResponseWriter, r *http.Request) {
	req, err := decode[createSessionRequest](r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	d := h.defaults
	name, age, cash, score := d.Name, d.Age, d.Cash, d.CreditScore
	if req.Name != "" {
		name = req.Name
	}
	if req.Age != nil {
		age = *req.Age
	}
	if req.Cash != nil {
		cash = *req.Cash
	}
	if req.CreditScore != nil {
		score = *req.CreditScore
	}
	switch {
	case age < 0 || age >= d.Rules.RetirementAge:
		err = fmt.Errorf("%w: age must be between 0 and %d", sim.ErrValidation, d.Rules.RetirementAge-1)
	case cash.IsNegative() || cash.GreaterThan(sim.MaxAmount):
		err = fmt.Errorf("%w: cash must be between 0 and %s", sim.ErrValidation, sim.MaxAmount)
	case score < model.MinCreditScore || score > model.MaxCreditScore:
		err = fmt.Errorf("%w: credit score must be between %d and %d", sim.ErrValidation, model.MinCreditScore, model.MaxCreditScore)
	}
	if err != nil {
		h.writeError(w, err)
		return
	}

	opts := []sim.Option{sim.WithRules(d.Rules), sim.WithLogger(h.log)}
	if req.Seed != nil {
		opts = append(opts, sim.WithSeed(*req.Seed))
	}
	sess := sim.New(model.NewPlayer(name, age, cash, score), opts...)
	id := h.store.Add(sess)
	h.log.WithFields(logrus.Fields{"session": id, "player": name}).Info("session created")
	h.writeJSON(w, http.StatusCreated, view(id, sess))
}

func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	h.on(w, r, http.StatusOK, func(id uuid.UUID, s *sim.Session) (any, error) {
		return view(id, s), nil
	})
}

func (h *Handler) deleteSession(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, fmt.Errorf("%w: session id: %w", sim.ErrValidation, err))
		return
	}
	if !h.store.Delete(id) {
		h.writeError(w, errSessionNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) netWorth(w http.ResponseWriter, r *http.Request) {
	h.on(w, r, http.StatusOK, func(_ uuid.UUID, s *sim.Session) (any, error) {
		return s.NetWorth(), nil
	})
}

func (h *Handler) advance(w http.ResponseWriter, r *http.Request) {
	h.on(w, r, http.StatusOK, func(_ uuid.UUID, s *sim.Session) (any, error) {
		res, err := s.AdvanceMonth()
		if err != nil {
			return nil, err
		}
		h.metrics.ObserveTick(res)
		return res, nil
	})
}

type choiceRequest struct {
	EventID uuid.UUID `json:"event_id"`
	Option  string    `json:"option"`
	Item    string    `json:"item"`
	Source  string    `json:"source"`
}

func (h *Handler) resolveChoice(w http.ResponseWriter, r *http.Request) {
	req, err := decode[choiceRequest](r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	src, err := parseSource(req.Source)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.on(w, r, http.StatusOK, func(_ uuid.UUID, s *sim.Session) (any, error) {
		res, err := s.ResolveChoice(req.EventID, event.Choice{
			Option: event.OptionID(req.Option),
			Item:   req.Item,
			Source: src,
		})
		if err != nil {
			return nil, err
		}
		h.metrics.ObserveResolution(res)
		return res, nil
	})
}

func (h *Handler) retire(w http.ResponseWriter, r *http.Request) {
	h.on(w, r, http.StatusOK, func(id uuid.UUID, s *sim.Session) (any, error) {
		if err := s.Retire(); err != nil {
			return nil, err
		}
		return view(id, s), nil
	})
}
