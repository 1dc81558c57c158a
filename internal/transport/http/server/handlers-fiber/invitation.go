package handlers_fiber

import (
	"fmt"
	"net/http"
	"strings"

	"team-todo-service/internal/api"
	"team-todo-service/internal/mapper"

	"github.com/gofiber/fiber/v2"
)

// InviteMember invites an email into a team, any member may invite.
func (h *Handler) InviteMember(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return writeError(c, err)
	}

	var body api.InviteRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}
	email := strings.TrimSpace(body.Email)
	if email == "" {
		return badRequest(c, "email is required")
	}

	if _, err := h.uc.InviteMember(c.Context(), c.Params("teamId"), email, id.ID); err != nil {
		h.log.Infow("failed to invite member", "team_id", c.Params("teamId"), "error", err.Error())
		return writeError(c, err)
	}

	return writeMessage(c, fmt.Sprintf("Invitation sent to %s", email))
}

// ListTeamInvitations returns a team's pending invitations, members only.
func (h *Handler) ListTeamInvitations(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return writeError(c, err)
	}

	invs, err := h.uc.ListTeamInvitations(c.Context(), c.Params("teamId"), id.ID)
	if err != nil {
		return writeError(c, err)
	}

	return writeData(c, http.StatusOK, mapper.ToAPIInvitationList(invs))
}

// ListMyInvitations returns the caller's pending invitations.
func (h *Handler) ListMyInvitations(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return writeError(c, err)
	}

	invs, err := h.uc.ListMyInvitations(c.Context(), id.ID)
	if err != nil {
		h.log.Errorw("failed to list invitations", "error", err.Error())
		return writeError(c, err)
	}

	return writeData(c, http.StatusOK, mapper.ToAPIInvitationSummaryList(invs))
}

// AcceptInvitation joins the caller to the inviting team.
func (h *Handler) AcceptInvitation(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return writeError(c, err)
	}

	if err := h.uc.AcceptInvitation(c.Context(), c.Params("invitationId"), id.ID); err != nil {
		return writeError(c, err)
	}

	return writeMessage(c, "Invitation accepted successfully! Welcome to the team.")
}

// DeclineInvitation marks the invitation declined.
func (h *Handler) DeclineInvitation(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return writeError(c, err)
	}

	if err := h.uc.DeclineInvitation(c.Context(), c.Params("invitationId"), id.ID); err != nil {
		return writeError(c, err)
	}

	return writeMessage(c, "Invitation declined")
}
