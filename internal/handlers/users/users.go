package users

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/bankledger/internal/domain"
	"github.com/GlebRadaev/bankledger/internal/dto"
	"github.com/GlebRadaev/bankledger/internal/metrics"
	"github.com/GlebRadaev/bankledger/internal/service/userservice"
	"github.com/GlebRadaev/bankledger/pkg/utils"
	"github.com/GlebRadaev/bankledger/pkg/validate"
)

//go:generate mockgen -source=users.go -destination=mock_users.go -package=users

type Service interface {
	Register(ctx context.Context, fullName, birthDate, taxID, address string) (*domain.User, error)
	Lookup(ctx context.Context, taxID string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

type UserHandler struct {
	userService Service
}

func New(userService Service) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// Register godoc
//
//	@Summary		Register a new user
//	@Description	Register a customer. The tax id must not belong to another user.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.RegisterUserRequestDTO	true	"Register request body"
//	@Success		201		{object}	dto.UserResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		409		{object}	utils.Response	"User already exists"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/users [post]
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterUserRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.userService.Register(r.Context(), req.FullName, req.BirthDate, req.TaxID, req.Address)
	metrics.ObserveOperation("register_user", err)
	if err != nil {
		if errors.Is(err, userservice.ErrDuplicateUser) {
			utils.RespondWithError(w, http.StatusConflict, err.Error())
			return
		}
		zap.L().Error("can't register user", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	zap.L().Info("user registered", zap.String("tax_id", user.TaxID))
	utils.RespondWithJSON(w, http.StatusCreated, dto.NewUserResponse(user))
}

// GetUser godoc
//
//	@Summary		Find a user by tax id
//	@Tags			Users
//	@Produce		json
//	@Param			taxID	path		string	true	"Tax id"
//	@Success		200		{object}	dto.UserResponseDTO
//	@Failure		404		{object}	utils.Response	"User not found"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/users/{taxID} [get]
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.Lookup(r.Context(), chi.URLParam(r, "taxID"))
	metrics.ObserveOperation("get_user", err)
	if err != nil {
		if errors.Is(err, userservice.ErrUserNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		zap.L().Error("can't find user", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewUserResponse(user))
}

// GetUsers godoc
//
//	@Summary		List registered users
//	@Tags			Users
//	@Produce		json
//	@Success		200	{array}		dto.UserResponseDTO
//	@Success		204	{object}	utils.Response	"No users registered"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/users [get]
func (h *UserHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	metrics.ObserveOperation("list_users", err)
	if err != nil {
		zap.L().Error("can't list users", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if len(users) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "Users not found")
		return
	}

	response := make([]dto.UserResponseDTO, len(users))
	for i := range users {
		response[i] = dto.NewUserResponse(&users[i])
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}
