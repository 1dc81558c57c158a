package handlers_fiber

import (
	"net/http"
	"strings"

	"team-todo-service/internal/api"
	"team-todo-service/internal/entities"
	"team-todo-service/internal/mapper"

	"github.com/gofiber/fiber/v2"
)

// ListTeams returns the caller's teams.
func (h *Handler) ListTeams(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return writeError(c, err)
	}

	teams, err := h.uc.ListTeams(c.Context(), id.ID)
	if err != nil {
		h.log.Errorw("failed to list teams", "error", err.Error())
		return writeError(c, err)
	}

	return writeData(c, http.StatusOK, mapper.ToAPITeamList(teams))
}

// CreateTeam creates a team and runs the optional bulk invite.
func (h *Handler) CreateTeam(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return writeError(c, err)
	}

	var body api.CreateTeamRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}

	team, outcomes, err := h.uc.CreateTeam(c.Context(), id.ID,
		strings.TrimSpace(body.Name), body.Description, body.MaxMembers, body.InviteEmails)
	if err != nil {
		h.log.Infow("failed to create team", "error", err.Error())
		return writeError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(struct {
		api.Response
		Invitations []api.InviteOutcome `json:"invitations"`
	}{
		Response:    api.Response{Success: true, Data: mapper.ToAPITeam(*team)},
		Invitations: mapper.ToAPIInviteOutcomes(outcomes),
	})
}

// UpdateTeam applies owner-only team settings changes.
func (h *Handler) UpdateTeam(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return writeError(c, err)
	}

	var body api.UpdateTeamRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}

	team, err := h.uc.UpdateTeam(c.Context(), c.Params("teamId"), id.ID, entities.TeamUpdate{
		Name:        body.Name,
		Description: body.Description,
		MaxMembers:  body.MaxMembers,
	})
	if err != nil {
		return writeError(c, err)
	}

	return writeData(c, http.StatusOK, mapper.ToAPITeam(*team))
}

// DeleteTeam removes a team, owner only.
func (h *Handler) DeleteTeam(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return writeError(c, err)
	}

	if err := h.uc.DeleteTeam(c.Context(), c.Params("teamId"), id.ID); err != nil {
		return writeError(c, err)
	}

	return writeMessage(c, "Team deleted successfully")
}

// ListMembers returns the team roster, members only.
func (h *Handler) ListMembers(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return writeError(c, err)
	}

	members, err := h.uc.ListMembers(c.Context(), c.Params("teamId"), id.ID)
	if err != nil {
		return writeError(c, err)
	}

	return writeData(c, http.StatusOK, mapper.ToAPIMemberList(members))
}
