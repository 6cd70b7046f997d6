package usersserver

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"
	"github.com/oapi-codegen/runtime/types"

	userhttpmapper "github.com/dolphin-software/users-service/internal/domains/users/adapters/http/mapper"
	userworkflows "github.com/dolphin-software/users-service/internal/domains/users/adapters/workflows"
	userports "github.com/dolphin-software/users-service/internal/domains/users/ports"
	apierrors "github.com/dolphin-software/users-service/internal/shared/errors"
)

// UserAPI implements the users REST resource.
type UserAPI struct {
	service   userports.Service
	workflows userports.WorkflowOrchestrator
	responder *apierrors.ChainedResponder
}

// NewUserAPI wires dependencies. A nil orchestrator creates users inline.
func NewUserAPI(service userports.Service, workflows userports.WorkflowOrchestrator) UserAPI {
	if workflows == nil {
		workflows = userworkflows.NewInlineUserWorkflows(service)
	}
	return UserAPI{service: service, workflows: workflows, responder: newUserResponder(nil)}
}

// WithClock returns a copy whose error bodies are stamped by clock.
func (api UserAPI) WithClock(clock func() time.Time) UserAPI {
	api.responder = newUserResponder(clock)
	return api
}

func toTransportUser(model User) userhttpmapper.User {
	user := userhttpmapper.User{
		FullName: model.FullName,
		Phone:    model.Phone,
		Email:    model.Email,
		Password: model.Password,
	}
	if model.Id != nil {
		user.ID = *model.Id
	}
	if model.CreateDate != nil {
		user.CreateDate = model.CreateDate.Time
	}
	if model.UpdateDate != nil {
		user.UpdateDate = model.UpdateDate.Time
	}
	return user
}

func fromTransportUser(user userhttpmapper.User) User {
	id := user.ID
	created := types.Date{Time: user.CreateDate}
	updated := types.Date{Time: user.UpdateDate}
	return User{
		Id:         &id,
		FullName:   user.FullName,
		Phone:      user.Phone,
		Email:      user.Email,
		Password:   user.Password,
		CreateDate: &created,
		UpdateDate: &updated,
	}
}

func fromTransportView(view userhttpmapper.UserView) UserDto {
	return UserDto{
		Id:         view.ID,
		FullName:   view.FullName,
		Phone:      view.Phone,
		Email:      view.Email,
		CreateDate: types.Date{Time: view.CreateDate},
		UpdateDate: types.Date{Time: view.UpdateDate},
	}
}

func fromTransportViews(views []userhttpmapper.UserView) []UserDto {
	result := make([]UserDto, 0, len(views))
	for _, view := range views {
		result = append(result, fromTransportView(view))
	}
	return result
}

// Get /api/users
// List all users
func (api *UserAPI) ListUsers(c *gin.Context) {
	users, err := api.service.List(c.Request.Context())
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, UserList{Users: fromTransportViews(userhttpmapper.FromUserDTOs(users))})
}

// Get /api/users/:id
// Find user by id
func (api *UserAPI) GetUserById(c *gin.Context) {
	id, ok := api.bindUserID(c)
	if !ok {
		return
	}
	user, err := api.service.GetByID(c.Request.Context(), id)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromTransportView(userhttpmapper.FromUserDTO(user)))
}

// Post /api/users
// Create user
func (api *UserAPI) CreateUser(c *gin.Context) {
	var payload User
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.BadRequest(c, err.Error())
		return
	}
	user := userhttpmapper.ToDomainUser(toTransportUser(payload))
	saved, err := api.workflows.CreateUser(c.Request.Context(), user)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fromTransportUser(userhttpmapper.FromDomainUser(saved)))
}

// Put /api/users/:id
// Update user
func (api *UserAPI) UpdateUser(c *gin.Context) {
	id, ok := api.bindUserID(c)
	if !ok {
		return
	}
	var payload User
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.BadRequest(c, err.Error())
		return
	}
	user := userhttpmapper.ToDomainUser(toTransportUser(payload))
	if err := api.service.UpdateByID(c.Request.Context(), id, user); err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Delete /api/users/:id
// Delete user
func (api *UserAPI) DeleteUser(c *gin.Context) {
	id, ok := api.bindUserID(c)
	if !ok {
		return
	}
	if err := api.service.DeleteByID(c.Request.Context(), id); err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (api *UserAPI) bindUserID(c *gin.Context) (uuid.UUID, bool) {
	var id uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", c.Param("id"), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		api.responder.BadRequest(c, fmt.Sprintf("Invalid format for parameter id: %s", err))
		return uuid.Nil, false
	}
	return id, true
}
