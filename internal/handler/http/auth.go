package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/djougoo/propass-central/internal/logger"
	"github.com/djougoo/propass-central/internal/service"
	"github.com/djougoo/propass-central/internal/store"
	"github.com/djougoo/propass-central/internal/utils"
	"github.com/djougoo/propass-central/models"
)

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	foundUser, err := h.services.AuthService.Login(ctx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid data provided")
			utils.WriteError(w, "invalid data provided", http.StatusBadRequest)
			return
		case errors.Is(err, store.ErrNoUserWasFound),
			errors.Is(err, service.ErrWrongPassword),
			errors.Is(err, service.ErrUserInactive):
			// deliberately indistinguishable to the caller
			log.Err(err).Msg("login rejected")
			utils.WriteError(w, "invalid login/password", http.StatusUnauthorized)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during user login")
			utils.WriteError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	log.Debug().Int64("id", foundUser.ID).Str("username", foundUser.Username).Msg("user successfully logged in")

	token, err := h.services.AuthService.CreateToken(ctx, foundUser, req.DeviceID)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		utils.WriteError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	profile := foundUser.Profile()
	if _, err := utils.WriteJSON(w, models.LoginResponse{
		Success: true,
		Token:   token.SignedString,
		User:    &profile,
	}, http.StatusOK); err != nil {
		log.Err(err).Msg("error writing login response")
	}
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	token, foundUser, err := h.services.AuthService.Refresh(ctx, req.Token, req.DeviceID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTokenIsExpiredOrInvalid),
			errors.Is(err, store.ErrNoUserWasFound):
			log.Err(err).Msg("token refresh rejected")
			utils.WriteError(w, service.ErrTokenIsExpiredOrInvalid.Error(), http.StatusUnauthorized)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during token refresh")
			utils.WriteError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	profile := foundUser.Profile()
	if _, err := utils.WriteJSON(w, models.LoginResponse{
		Success: true,
		Token:   token.SignedString,
		User:    &profile,
	}, http.StatusOK); err != nil {
		log.Err(err).Msg("error writing refresh response")
	}
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	claims, ok := utils.GetClaimsFromContext(ctx)
	if !ok {
		log.Error().Msg("no claims in authenticated request context")
		utils.WriteError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	foundUser, err := h.services.AuthService.Me(ctx, claims.UserID)
	if err != nil {
		log.Err(err).Int64("id", claims.UserID).Msg("user profile lookup failed")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	if _, err := utils.WriteJSON(w, models.SuccessResponse{
		Success: true,
		Data:    foundUser.Profile(),
	}, http.StatusOK); err != nil {
		log.Err(err).Msg("error writing profile response")
	}
}
