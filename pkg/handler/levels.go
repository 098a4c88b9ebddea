package handler

import (
	"fmt"
	"net/http"

	"github.com/AccelByte/extend-balloon-factory/pkg/common"
	"github.com/AccelByte/extend-balloon-factory/pkg/game"
)

func (h *Game) level1Current(scope *common.Scope, w http.ResponseWriter, r *http.Request, s *game.Session) {
	round, err := s.Level1Current()
	if err != nil {
		writeError(scope, w, err)
		return
	}
	writeJSON(scope, w, http.StatusOK, round)
}

func (h *Game) level1Start(scope *common.Scope, w http.ResponseWriter, r *http.Request, s *game.Session) {
	round, err := s.Level1Start(scope.Ctx)
	if err != nil {
		writeError(scope, w, err)
		return
	}
	writeJSON(scope, w, http.StatusOK, round)
}

func (h *Game) level1Pump(scope *common.Scope, w http.ResponseWriter, r *http.Request, s *game.Session) {
	res, err := s.Level1Pump(scope.Ctx)
	if err != nil {
		writeError(scope, w, err)
		return
	}
	writeJSON(scope, w, http.StatusOK, res)
}

func (h *Game) level1CashOut(scope *common.Scope, w http.ResponseWriter, r *http.Request, s *game.Session) {
	res, err := s.Level1CashOut(scope.Ctx)
	if err != nil {
		writeError(scope, w, err)
		return
	}
	if res.Completion != nil {
		scope.TraceEvent("level 1 completed")
	}
	writeJSON(scope, w, http.StatusOK, res)
}

func (h *Game) level2Strategy(scope *common.Scope, w http.ResponseWriter, r *http.Request, s *game.Session) {
	update, err := decodeStrategy(r)
	if err != nil {
		writeError(scope, w, err)
		return
	}
	strategy, err := s.Level2SetStrategy(scope.Ctx, update)
	if err != nil {
		writeError(scope, w, err)
		return
	}
	writeJSON(scope, w, http.StatusOK, strategy)
}

func (h *Game) level2Start(scope *common.Scope, w http.ResponseWriter, r *http.Request, s *game.Session) {
	if err := s.Level2Start(scope.Ctx); err != nil {
		writeError(scope, w, err)
		return
	}
	writeJSON(scope, w, http.StatusAccepted, s.View().Level2)
}

func (h *Game) level2Pause(scope *common.Scope, w http.ResponseWriter, r *http.Request, s *game.Session) {
	rec, err := s.Level2Pause(scope.Ctx)
	if err != nil {
		writeError(scope, w, err)
		return
	}
	writeJSON(scope, w, http.StatusOK, rec)
}

func (h *Game) level2Skip(scope *common.Scope, w http.ResponseWriter, r *http.Request, s *game.Session) {
	c, err := s.Level2SkipToEnd(scope.Ctx)
	if err != nil {
		writeError(scope, w, err)
		return
	}
	scope.TraceEvent("level 2 completed")
	writeJSON(scope, w, http.StatusOK, c)
}

func (h *Game) level2Replay(scope *common.Scope, w http.ResponseWriter, r *http.Request, s *game.Session) {
	if err := s.Level2Replay(scope.Ctx); err != nil {
		writeError(scope, w, err)
		return
	}
	writeJSON(scope, w, http.StatusOK, s.View().State.L2)
}

func (h *Game) level3Strategy(scope *common.Scope, w http.ResponseWriter, r *http.Request, s *game.Session) {
	update, err := decodeStrategy(r)
	if err != nil {
		writeError(scope, w, err)
		return
	}
	strategy, err := s.Level3SetStrategy(scope.Ctx, update)
	if err != nil {
		writeError(scope, w, err)
		return
	}
	writeJSON(scope, w, http.StatusOK, strategy)
}

func (h *Game) level3Temperature(scope *common.Scope, w http.ResponseWriter, r *http.Request, s *game.Session) {
	var req temperatureRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(scope, w, err)
		return
	}
	if req.Temperature == nil {
		writeError(scope, w, fmt.Errorf("%w: temperature is required", errBadRequest))
		return
	}
	insight, err := s.Level3SetTemperature(scope.Ctx, *req.Temperature)
	if err != nil {
		writeError(scope, w, err)
		return
	}
	writeJSON(scope, w, http.StatusOK, insight)
}

func (h *Game) level3Start(scope *common.Scope, w http.ResponseWriter, r *http.Request, s *game.Session) {
	if err := s.Level3Start(scope.Ctx); err != nil {
		writeError(scope, w, err)
		return
	}
	h.level3Status(scope, w, r, s)
}

func (h *Game) level3Stop(scope *common.Scope, w http.ResponseWriter, r *http.Request, s *game.Session) {
	if err := s.Level3Stop(scope.Ctx); err != nil {
		writeError(scope, w, err)
		return
	}
	h.level3Status(scope, w, r, s)
}

func (h *Game) level3Reset(scope *common.Scope, w http.ResponseWriter, r *http.Request, s *game.Session) {
	if err := s.Level3Reset(scope.Ctx); err != nil {
		writeError(scope, w, err)
		return
	}
	h.level3Status(scope, w, r, s)
}

func (h *Game) level3Status(scope *common.Scope, w http.ResponseWriter, r *http.Request, s *game.Session) {
	status, err := s.Level3Status()
	if err != nil {
		writeError(scope, w, err)
		return
	}
	writeJSON(scope, w, http.StatusOK, status)
}
