// Package mapper converts between domain models and transport DTOs.
package mapper

import (
	"team-todo-service/internal/api"
	"team-todo-service/internal/entities"
)

// ToAPITeam maps entities.Team to transport model.
func ToAPITeam(t entities.Team) api.Team {
	return api.Team{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		MaxMembers:  t.MaxMembers,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// ToAPITeamList maps a slice of teams.
func ToAPITeamList(list []entities.Team) []api.Team {
	res := make([]api.Team, 0, len(list))
	for _, t := range list {
		res = append(res, ToAPITeam(t))
	}
	return res
}

// ToAPIMember maps entities.TeamMember to transport model.
func ToAPIMember(m entities.TeamMember) api.TeamMember {
	return api.TeamMember{
		ID:       m.ID,
		TeamID:   m.TeamID,
		UserID:   m.UserID,
		Role:     string(m.Role),
		JoinedAt: m.JoinedAt,
		Email:    m.Email,
	}
}

// ToAPIMemberList maps a slice of members.
func ToAPIMemberList(list []entities.TeamMember) []api.TeamMember {
	res := make([]api.TeamMember, 0, len(list))
	for _, m := range list {
		res = append(res, ToAPIMember(m))
	}
	return res
}

// ToAPIInvitation maps entities.Invitation to transport model.
func ToAPIInvitation(inv entities.Invitation) api.Invitation {
	return api.Invitation{
		ID:            inv.ID,
		TeamID:        inv.TeamID,
		InvitedEmail:  inv.InvitedEmail,
		InvitedUserID: inv.InvitedUserID,
		InvitedBy:     inv.InvitedBy,
		Status:        string(inv.Status),
		CreatedAt:     inv.CreatedAt,
		RespondedAt:   inv.RespondedAt,
	}
}

// ToAPIInvitationList maps a slice of invitations.
func ToAPIInvitationList(list []entities.Invitation) []api.Invitation {
	res := make([]api.Invitation, 0, len(list))
	for _, inv := range list {
		res = append(res, ToAPIInvitation(inv))
	}
	return res
}

// ToAPIInvitationSummaryList maps a slice of inbox entries.
func ToAPIInvitationSummaryList(list []entities.InvitationSummary) []api.InvitationSummary {
	res := make([]api.InvitationSummary, 0, len(list))
	for _, inv := range list {
		res = append(res, api.InvitationSummary{
			ID:              inv.ID,
			TeamID:          inv.TeamID,
			TeamName:        inv.TeamName,
			TeamDescription: inv.TeamDescription,
			InvitedBy:       inv.InvitedBy,
			InvitedByEmail:  inv.InvitedByEmail,
			CreatedAt:       inv.CreatedAt,
		})
	}
	return res
}

// ToAPIInviteOutcomes maps bulk-invite outcomes.
func ToAPIInviteOutcomes(list []entities.InviteOutcome) []api.InviteOutcome {
	res := make([]api.InviteOutcome, 0, len(list))
	for _, o := range list {
		res = append(res, api.InviteOutcome{Email: o.Email, Status: string(o.Status)})
	}
	return res
}

// ToAPITodo maps entities.Todo to transport model.
func ToAPITodo(t entities.Todo) api.Todo {
	return api.Todo{
		ID:          t.ID,
		UserID:      t.UserID,
		TeamID:      t.TeamID,
		Name:        t.Name,
		Description: t.Description,
		DueDate:     t.DueDate,
		Status:      string(t.Status),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// ToAPITodoList maps a slice of todos.
func ToAPITodoList(list []entities.Todo) []api.Todo {
	res := make([]api.Todo, 0, len(list))
	for _, t := range list {
		res = append(res, ToAPITodo(t))
	}
	return res
}

// ToAPISession maps entities.WorkSession to transport model.
func ToAPISession(s entities.WorkSession) api.WorkSession {
	return api.WorkSession{
		ID:              s.ID,
		TodoID:          s.TodoID,
		UserID:          s.UserID,
		StartedAt:       s.StartedAt,
		EndedAt:         s.EndedAt,
		DurationMinutes: s.DurationMinutes,
		UserEmail:       s.UserEmail,
	}
}

// ToAPISessionList maps a slice of sessions.
func ToAPISessionList(list []entities.WorkSession) []api.WorkSession {
	res := make([]api.WorkSession, 0, len(list))
	for _, s := range list {
		res = append(res, ToAPISession(s))
	}
	return res
}

// ToAPIActiveSessionList maps open sessions joined with todos.
func ToAPIActiveSessionList(list []entities.ActiveSession) []api.ActiveSession {
	res := make([]api.ActiveSession, 0, len(list))
	for _, as := range list {
		res = append(res, api.ActiveSession{
			Session: ToAPISession(as.Session),
			Todo:    ToAPITodo(as.Todo),
		})
	}
	return res
}

// ToAPISessionSummary maps a todo's aggregated session summary.
func ToAPISessionSummary(s entities.SessionSummary) api.SessionSummary {
	contributions := make([]api.UserContribution, 0, len(s.Contributions))
	for _, c := range s.Contributions {
		contributions = append(contributions, api.UserContribution{
			UserID:     c.UserID,
			Email:      c.Email,
			Minutes:    c.Minutes,
			Proportion: c.Proportion,
		})
	}
	return api.SessionSummary{
		TodoID:        s.TodoID,
		TotalMinutes:  s.TotalMinutes,
		Contributions: contributions,
	}
}
