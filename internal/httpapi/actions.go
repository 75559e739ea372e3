package httpapi

import (
	"net/http"

	"MoneySmartz/internal/model"
	"MoneySmartz/internal/sim"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type accountRequest struct {
	Kind model.AccountKind `json:"kind"`
}

type amountRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Source string          `json:"source"`
}

type loanRequest struct {
	Kind      model.LoanKind  `json:"kind"`
	Principal decimal.Decimal `json:"principal"`
	Rate      decimal.Decimal `json:"rate"`
	TermYears int             `json:"term_years"`
}

type assetRequest struct {
	Kind   model.AssetKind `json:"kind"`
	Name   string          `json:"name"`
	Value  decimal.Decimal `json:"value"`
	Source string          `json:"source"`
}

type repairRequest struct {
	Cost   decimal.Decimal `json:"cost"`
	Source string          `json:"source"`
}

type itemRequest struct {
	Key    string `json:"key"`
	Source string `json:"source"`
}

type applyRequest struct {
	Title string `json:"title"`
}

// action decodes T, then runs fn against the session and answers with status.
func action[T any](h *Handler, w http.ResponseWriter, r *http.Request, status int,
	fn func(uuid.UUID, *sim.Session, T) (any, error)) {
	req, err := decode[T](r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.on(w, r, status, func(id uuid.UUID, s *sim.Session) (any, error) {
		return fn(id, s, req)
	})
}

func (h *Handler) openBankAccount(w http.ResponseWriter, r *http.Request) {
	action(h, w, r, http.StatusCreated, func(id uuid.UUID, s *sim.Session, req accountRequest) (any, error) {
		if req.Kind == "" {
			req.Kind = model.Checking
		}
		if err := s.OpenBankAccount(req.Kind); err != nil {
			return nil, err
		}
		return view(id, s), nil
	})
}

func (h *Handler) deposit(w http.ResponseWriter, r *http.Request) {
	action(h, w, r, http.StatusOK, func(id uuid.UUID, s *sim.Session, req amountRequest) (any, error) {
		if err := s.Deposit(req.Amount); err != nil {
			return nil, err
		}
		return view(id, s), nil
	})
}

func (h *Handler) withdraw(w http.ResponseWriter, r *http.Request) {
	action(h, w, r, http.StatusOK, func(id uuid.UUID, s *sim.Session, req amountRequest) (any, error) {
		if err := s.Withdraw(req.Amount); err != nil {
			return nil, err
		}
		return view(id, s), nil
	})
}

func (h *Handler) getDebitCard(w http.ResponseWriter, r *http.Request) {
	h.on(w, r, http.StatusCreated, func(id uuid.UUID, s *sim.Session) (any, error) {
		if err := s.GetDebitCard(); err != nil {
			return nil, err
		}
		return view(id, s), nil
	})
}

func (h *Handler) applyForCreditCard(w http.ResponseWriter, r *http.Request) {
	h.on(w, r, http.StatusCreated, func(_ uuid.UUID, s *sim.Session) (any, error) {
		limit, err := s.ApplyForCreditCard()
		if err != nil {
			return nil, err
		}
		return map[string]decimal.Decimal{"limit": limit}, nil
	})
}

func (h *Handler) payCreditCard(w http.ResponseWriter, r *http.Request) {
	action(h, w, r, http.StatusOK, func(id uuid.UUID, s *sim.Session, req amountRequest) (any, error) {
		src, err := parseSource(req.Source)
		if err != nil {
			return nil, err
		}
		if err := s.PayCreditCard(req.Amount, src); err != nil {
			return nil, err
		}
		return view(id, s), nil
	})
}

func (h *Handler) takeLoan(w http.ResponseWriter, r *http.Request) {
	action(h, w, r, http.StatusCreated, func(_ uuid.UUID, s *sim.Session, req loanRequest) (any, error) {
		return s.TakeLoan(req.Kind, req.Principal, req.Rate, req.TermYears)
	})
}

func (h *Handler) payLoan(w http.ResponseWriter, r *http.Request) {
	loanID := chi.URLParam(r, "loanID")
	action(h, w, r, http.StatusOK, func(id uuid.UUID, s *sim.Session, req amountRequest) (any, error) {
		src, err := parseSource(req.Source)
		if err != nil {
			return nil, err
		}
		if err := s.MakeExtraLoanPayment(loanID, req.Amount, src); err != nil {
			return nil, err
		}
		return view(id, s), nil
	})
}

func (h *Handler) buyAsset(w http.ResponseWriter, r *http.Request) {
	action(h, w, r, http.StatusCreated, func(_ uuid.UUID, s *sim.Session, req assetRequest) (any, error) {
		src, err := parseSource(req.Source)
		if err != nil {
			return nil, err
		}
		return s.BuyAsset(req.Kind, req.Name, req.Value, src)
	})
}

func (h *Handler) repairAsset(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "assetID")
	action(h, w, r, http.StatusOK, func(id uuid.UUID, s *sim.Session, req repairRequest) (any, error) {
		src, err := parseSource(req.Source)
		if err != nil {
			return nil, err
		}
		if err := s.RepairAsset(assetID, req.Cost, src); err != nil {
			return nil, err
		}
		return view(id, s), nil
	})
}

func (h *Handler) buyItem(w http.ResponseWriter, r *http.Request) {
	action(h, w, r, http.StatusOK, func(id uuid.UUID, s *sim.Session, req itemRequest) (any, error) {
		src, err := parseSource(req.Source)
		if err != nil {
			return nil, err
		}
		if err := s.BuyItem(req.Key, src); err != nil {
			return nil, err
		}
		return view(id, s), nil
	})
}

func (h *Handler) searchJobs(w http.ResponseWriter, r *http.Request) {
	h.on(w, r, http.StatusOK, func(_ uuid.UUID, s *sim.Session) (any, error) {
		offers, err := s.SearchJobs()
		if err != nil {
			return nil, err
		}
		return map[string]any{"offers": offers, "hire_chance": s.HireChance()}, nil
	})
}

func (h *Handler) applyForJob(w http.ResponseWriter, r *http.Request) {
	action(h, w, r, http.StatusOK, func(_ uuid.UUID, s *sim.Session, req applyRequest) (any, error) {
		hired, err := s.ApplyForJob(req.Title)
		if err != nil {
			return nil, err
		}
		resp := map[string]any{"hired": hired}
		if hired {
			resp["employment"] = s.Snapshot().Employment
		}
		return resp, nil
	})
}
