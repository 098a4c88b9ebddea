package handler

import (
	"fmt"
	"net/http"

	"github.com/AccelByte/extend-balloon-factory/pkg/common"
	"github.com/AccelByte/extend-balloon-factory/pkg/game"
	"github.com/AccelByte/extend-balloon-factory/pkg/state"
)

// Game serves the player-facing HTTP API.
type Game struct {
	manager *game.Manager
}

// NewGame creates the API handler over a session manager.
func NewGame(manager *game.Manager) *Game {
	return &Game{manager: manager}
}

// Routes returns the API mux.
func (h *Game) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	const p = "/v1/players/{id}"

	mux.HandleFunc("GET "+p+"/state", h.with("Game.State", h.getState))
	mux.HandleFunc("DELETE "+p+"/state", h.with("Game.Reset", h.reset))
	mux.HandleFunc("PUT "+p+"/tutorial/{level}", h.with("Game.Tutorial", h.setTutorial))

	mux.HandleFunc("GET "+p+"/level1/current", h.with("Game.Level1Current", h.level1Current))
	mux.HandleFunc("POST "+p+"/level1/start", h.with("Game.Level1Start", h.level1Start))
	mux.HandleFunc("POST "+p+"/level1/pump", h.with("Game.Level1Pump", h.level1Pump))
	mux.HandleFunc("POST "+p+"/level1/cashout", h.with("Game.Level1CashOut", h.level1CashOut))

	mux.HandleFunc("PUT "+p+"/level2/strategy", h.with("Game.Level2Strategy", h.level2Strategy))
	mux.HandleFunc("POST "+p+"/level2/start", h.with("Game.Level2Start", h.level2Start))
	mux.HandleFunc("POST "+p+"/level2/pause", h.with("Game.Level2Pause", h.level2Pause))
	mux.HandleFunc("POST "+p+"/level2/skip", h.with("Game.Level2Skip", h.level2Skip))
	mux.HandleFunc("POST "+p+"/level2/replay", h.with("Game.Level2Replay", h.level2Replay))
	mux.HandleFunc("POST "+p+"/level2/leave", h.with("Game.Level2Leave", h.leave(2)))

	mux.HandleFunc("PUT "+p+"/level3/strategy", h.with("Game.Level3Strategy", h.level3Strategy))
	mux.HandleFunc("PUT "+p+"/level3/temperature", h.with("Game.Level3Temperature", h.level3Temperature))
	mux.HandleFunc("POST "+p+"/level3/start", h.with("Game.Level3Start", h.level3Start))
	mux.HandleFunc("POST "+p+"/level3/stop", h.with("Game.Level3Stop", h.level3Stop))
	mux.HandleFunc("POST "+p+"/level3/reset", h.with("Game.Level3Reset", h.level3Reset))
	mux.HandleFunc("POST "+p+"/level3/leave", h.with("Game.Level3Leave", h.leave(3)))
	mux.HandleFunc("GET "+p+"/level3/status", h.with("Game.Level3Status", h.level3Status))

	return mux
}

// sessionHandler handles a request for one player's session.
type sessionHandler func(scope *common.Scope, w http.ResponseWriter, r *http.Request, s *game.Session)

// with opens a trace scope, resolves the player's session and runs fn.
func (h *Game) with(name string, fn sessionHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope := common.GetScopeFromContext(r.Context(), name)
		defer scope.Finish()

		playerID := r.PathValue("id")
		scope.WithField("playerID", playerID)

		s, err := h.manager.Session(scope.Ctx, playerID)
		if err != nil {
			writeError(scope, w, err)
			return
		}
		fn(scope, w, r, s)
	}
}

func (h *Game) getState(scope *common.Scope, w http.ResponseWriter, r *http.Request, s *game.Session) {
	writeJSON(scope, w, http.StatusOK, s.View())
}

func (h *Game) reset(scope *common.Scope, w http.ResponseWriter, r *http.Request, s *game.Session) {
	if err := s.Reset(scope.Ctx); err != nil {
		writeError(scope, w, err)
		return
	}
	writeJSON(scope, w, http.StatusOK, s.View())
}

func (h *Game) setTutorial(scope *common.Scope, w http.ResponseWriter, r *http.Request, s *game.Session) {
	level, err := pathInt(r, "level")
	if err != nil {
		writeError(scope, w, err)
		return
	}
	var req stepRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(scope, w, err)
		return
	}
	if req.Step == nil {
		writeError(scope, w, fmt.Errorf("%w: step is required", errBadRequest))
		return
	}
	if err := s.SetTutorialStep(scope.Ctx, level, *req.Step); err != nil {
		writeError(scope, w, err)
		return
	}
	writeJSON(scope, w, http.StatusNoContent, nil)
}

func (h *Game) leave(level int) sessionHandler {
	return func(scope *common.Scope, w http.ResponseWriter, r *http.Request, s *game.Session) {
		if err := s.Leave(level); err != nil {
			writeError(scope, w, err)
			return
		}
		writeJSON(scope, w, http.StatusNoContent, nil)
	}
}

func decodeStrategy(r *http.Request) (state.Strategy, error) {
	var update state.Strategy
	if err := decodeBody(r, &update); err != nil {
		return nil, err
	}
	if len(update) == 0 {
		return nil, fmt.Errorf("%w: strategy is empty", errBadRequest)
	}
	return update, nil
}
