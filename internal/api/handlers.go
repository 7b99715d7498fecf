package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/talgya/econsim/internal/engine"
	"github.com/talgya/econsim/internal/report"
)

func msToDuration(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

type variantHandlers struct {
	ctrl *engine.Controller
}

func (h *variantHandlers) handleStatus(w http.ResponseWriter, r *http.Request) {
	v := h.ctrl.View()
	writeJSON(w, map[string]any{
		"variant":             v.Variant,
		"step_index":          v.StepIndex,
		"running":             v.Running,
		"interval_ms":         v.IntervalMS,
		"total":               v.Total,
		"redistribution_rate": v.Config.RedistributionRate,
		"bread_fraction":      v.Config.BreadFraction,
	})
}

func (h *variantHandlers) handleAgents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, report.Rows(h.ctrl.View()))
}

func (h *variantHandlers) handleMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, report.Summarize(h.ctrl.View()))
}

func (h *variantHandlers) handleNarrative(w http.ResponseWriter, r *http.Request) {
	v := h.ctrl.View()
	writeJSON(w, map[string]any{
		"step_index": v.StepIndex,
		"text":       report.Narrative(v),
	})
}

func (h *variantHandlers) handleHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, report.Series(h.ctrl.View()))
}

func (h *variantHandlers) handleStep(w http.ResponseWriter, r *http.Request) {
	count := 1
	if r.ContentLength != 0 {
		var req struct {
			Count int `json:"count"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if req.Count != 0 {
			count = req.Count
		}
	}
	if count < 1 || count > 1000 {
		http.Error(w, "count must be 1-1000", http.StatusBadRequest)
		return
	}

	h.ctrl.StepN(count)
	v := h.ctrl.View()
	writeJSON(w, map[string]any{"step_index": v.StepIndex, "total": v.Total})
}

func (h *variantHandlers) handleReset(w http.ResponseWriter, r *http.Request) {
	h.ctrl.Reset()
	slog.Info("simulation reset", "variant", h.ctrl.Variant().String())
	writeJSON(w, map[string]any{"step_index": 0, "running": false})
}

func (h *variantHandlers) handleAutoPlay(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Running bool `json:"running"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	if req.Running {
		h.ctrl.StartAuto()
	} else {
		h.ctrl.StopAuto()
	}
	writeJSON(w, map[string]any{"running": h.ctrl.Running(), "interval_ms": h.ctrl.Interval().Milliseconds()})
}

func (h *variantHandlers) handleSpeed(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IntervalMS int `json:"interval_ms"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if req.IntervalMS <= 0 || req.IntervalMS > 60_000 {
		http.Error(w, "interval_ms must be 1-60000", http.StatusBadRequest)
		return
	}

	applied := h.ctrl.SetInterval(msToDuration(req.IntervalMS))
	slog.Info("auto-play speed changed", "variant", h.ctrl.Variant().String(), "interval", applied)
	writeJSON(w, map[string]any{"interval_ms": applied.Milliseconds(), "running": h.ctrl.Running()})
}

func (h *variantHandlers) handleRedistribution(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Rate float64 `json:"rate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	applied := h.ctrl.SetRedistributionRate(req.Rate)
	writeJSON(w, map[string]any{"rate": applied})
}

func (h *variantHandlers) handleBreadFraction(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Fraction float64 `json:"fraction"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	applied := h.ctrl.SetBreadFraction(req.Fraction)
	writeJSON(w, map[string]any{"fraction": applied})
}
