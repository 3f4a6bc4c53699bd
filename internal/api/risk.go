package api

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/aicomply/internal/risk"
	"github.com/JaimeStill/aicomply/pkg/handlers"
	"github.com/JaimeStill/aicomply/pkg/routes"
)

// ruleView is the wire form of a rule; the predicate is not serializable.
type ruleView struct {
	ID       string        `json:"id"`
	Category risk.Category `json:"category"`
	Weight   int           `json:"weight"`
	Reason   string        `json:"reason"`
	Action   string        `json:"action"`
}

// riskHandler exposes the engine without persistence: the rule table and
// ad hoc assessment of a posted system description.
type riskHandler struct {
	classifier  *risk.Classifier
	logger      *slog.Logger
	maxBodySize int64
}

func newRiskHandler(classifier *risk.Classifier, logger *slog.Logger, maxBodySize int64) *riskHandler {
	return &riskHandler{
		classifier:  classifier,
		logger:      logger.With("handler", "risk"),
		maxBodySize: maxBodySize,
	}
}

func (h *riskHandler) routes() routes.Group {
	return routes.Group{
		Prefix: "/risk",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/rules", Summary: "List the rule table", Handler: h.rules},
			{Method: "POST", Pattern: "/assess", Summary: "Classify a posted system without storing it", Handler: h.assess},
		},
	}
}

func (h *riskHandler) rules(w http.ResponseWriter, r *http.Request) {
	rules := h.classifier.Rules()
	views := make([]ruleView, len(rules))
	for i, rule := range rules {
		views[i] = ruleView{
			ID:       rule.ID,
			Category: rule.Category,
			Weight:   rule.Weight,
			Reason:   rule.Reason,
			Action:   rule.Action,
		}
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]any{
		"downgrade_threshold": h.classifier.Threshold(),
		"rules":               views,
	})
}

func (h *riskHandler) assess(w http.ResponseWriter, r *http.Request) {
	var s risk.System
	if err := handlers.DecodeJSON(w, r, h.maxBodySize, &s); err != nil {
		handlers.RespondError(w, h.logger, handlers.DecodeStatus(err), err)
		return
	}
	if err := s.CheckTags(); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, h.classifier.Classify(s))
}
