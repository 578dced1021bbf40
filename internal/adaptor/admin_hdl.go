package adaptor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/sameer-776/seminar-app/internal/data/entity"
	"github.com/sameer-776/seminar-app/internal/dto/request"
	"github.com/sameer-776/seminar-app/internal/usecase"
	"github.com/sameer-776/seminar-app/pkg/utils"
)

type AdminHandler struct {
	service usecase.AdminService
	log     *zap.Logger
}

func NewAdminHandler(service usecase.AdminService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		log:     log.With(zap.String("handler", "admin")),
	}
}

// DeleteUser handles POST /api/calls/deleteUser
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	caller := callerFromContext(r.Context())

	// A malformed body decodes to empty fields; the permission check
	// must run before any argument validation, so decoding is lenient.
	var req request.DeleteUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Debug("Undecodable deleteUser payload", zap.Error(err))
	}

	result, err := h.service.DeleteUser(r.Context(), caller, req.UID)
	if err != nil {
		h.writeCallError(w, err, "deleteUser")
		return
	}

	utils.ResponseCallResult(w, result)
}

// ChangeUserRole handles POST /api/calls/changeUserRole
func (h *AdminHandler) ChangeUserRole(w http.ResponseWriter, r *http.Request) {
	caller := callerFromContext(r.Context())

	var req request.ChangeUserRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Debug("Undecodable changeUserRole payload", zap.Error(err))
	}

	result, err := h.service.ChangeUserRole(r.Context(), caller, req.UID, entity.UserRole(req.NewRole))
	if err != nil {
		h.writeCallError(w, err, "changeUserRole")
		return
	}

	utils.ResponseCallResult(w, result)
}

// writeCallError maps a command failure onto the callable wire format.
func (h *AdminHandler) writeCallError(w http.ResponseWriter, err error, command string) {
	var callErr *usecase.CallError
	if !errors.As(err, &callErr) {
		h.log.Error("Unclassified command failure",
			zap.Error(err),
			zap.String("command", command),
		)
		utils.ResponseCallError(w, http.StatusInternalServerError,
			usecase.CodeInternal, "Internal error.")
		return
	}

	h.log.Warn("Command rejected",
		zap.String("command", command),
		zap.String("code", callErr.Code),
	)

	utils.ResponseCallError(w, callStatus(callErr.Code), callErr.Code, callErr.Message)
}

func callStatus(code string) int {
	switch code {
	case usecase.CodePermissionDenied:
		return http.StatusForbidden
	case usecase.CodeInvalidArgument:
		return http.StatusBadRequest
	case usecase.CodeFailedPrecondition:
		return http.StatusPreconditionFailed
	default:
		return http.StatusInternalServerError
	}
}

// callerFromContext builds the caller identity from the verified claims
// placed in context. Missing claims mean an anonymous caller.
func callerFromContext(ctx context.Context) usecase.Caller {
	uid, _ := utils.GetUserIDFromContext(ctx)
	role, _ := utils.GetRoleFromContext(ctx)
	return usecase.Caller{UID: uid, Role: role}
}
