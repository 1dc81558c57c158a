package postgres

import (
	"context"
	"database/sql"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"team-todo-service/config"
	"team-todo-service/internal/entities"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func ensureUser(t *testing.T, ctx context.Context, repo *Postgres, email string) *entities.User {
	t.Helper()

	u, err := repo.EnsureUser(ctx, entities.Caller{ID: uuid.NewString(), Email: email})
	require.NoError(t, err)
	return u
}

func execSQL(t *testing.T, cfg *config.Config, query string, args ...any) {
	t.Helper()

	db, err := sql.Open("postgres", cfg.Postgres.DSN())
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	_, err = db.Exec(query, args...)
	require.NoError(t, err)
}

func TestMembershipIntegration(t *testing.T) {
	ctx := context.Background()

	cfg, cleanup := setupPostgres(t)
	t.Cleanup(cleanup)

	repo := New(ctx, testLogger(t), cfg)
	require.NoError(t, repo.OnStart(ctx))
	t.Cleanup(func() { _ = repo.OnStop(ctx) })

	owner := ensureUser(t, ctx, repo, "owner@example.com")
	bob := ensureUser(t, ctx, repo, "bob@example.com")
	carol := ensureUser(t, ctx, repo, "carol@example.com")

	team, err := repo.CreateTeam(ctx, entities.Team{Name: "backend", Description: "core", MaxMembers: 2}, owner.ID)
	require.NoError(t, err)
	require.NotEmpty(t, team.ID)

	// creator joins as owner
	membership, err := repo.GetMembership(ctx, team.ID, owner.ID)
	require.NoError(t, err)
	require.Equal(t, entities.RoleOwner, membership.Role)

	_, err = repo.GetMembership(ctx, team.ID, bob.ID)
	require.ErrorIs(t, err, entities.ErrAccessDenied)

	teams, err := repo.ListTeams(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, teams, 1)

	_, err = repo.CreateInvitation(ctx, team.ID, "ghost@example.com", owner.ID)
	require.ErrorIs(t, err, entities.ErrUserNotFound)

	inv, err := repo.CreateInvitation(ctx, team.ID, bob.Email, owner.ID)
	require.NoError(t, err)
	require.Equal(t, entities.InvitationPending, inv.Status)

	_, err = repo.CreateInvitation(ctx, team.ID, bob.Email, owner.ID)
	require.ErrorIs(t, err, entities.ErrDuplicateInvitation)

	pending, err := repo.ListTeamInvitations(ctx, team.ID)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	mine, err := repo.ListUserInvitations(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, team.Name, mine[0].TeamName)
	require.Equal(t, owner.Email, mine[0].InvitedByEmail)

	// accepting a foreign invitation surfaces as not found
	err = repo.AcceptInvitation(ctx, inv.ID, carol.ID)
	require.ErrorIs(t, err, entities.ErrInvitationNotFound)

	require.NoError(t, repo.AcceptInvitation(ctx, inv.ID, bob.ID))

	membership, err = repo.GetMembership(ctx, team.ID, bob.ID)
	require.NoError(t, err)
	require.Equal(t, entities.RoleMember, membership.Role)

	err = repo.AcceptInvitation(ctx, inv.ID, bob.ID)
	require.ErrorIs(t, err, entities.ErrInvitationNotFound)

	// team is at capacity 2 now
	_, err = repo.CreateInvitation(ctx, team.ID, carol.Email, owner.ID)
	require.ErrorIs(t, err, entities.ErrTeamFull)

	// shrinking below the current member count is rejected
	one := 1
	_, err = repo.UpdateTeam(ctx, team.ID, entities.TeamUpdate{MaxMembers: &one})
	require.ErrorIs(t, err, entities.ErrInvalidArgument)

	three := 3
	team, err = repo.UpdateTeam(ctx, team.ID, entities.TeamUpdate{MaxMembers: &three})
	require.NoError(t, err)
	require.Equal(t, 3, team.MaxMembers)

	_, err = repo.CreateInvitation(ctx, team.ID, bob.Email, owner.ID)
	require.ErrorIs(t, err, entities.ErrAlreadyMember)

	carolInv, err := repo.CreateInvitation(ctx, team.ID, carol.Email, owner.ID)
	require.NoError(t, err)

	require.NoError(t, repo.DeclineInvitation(ctx, carolInv.ID, carol.ID))
	err = repo.DeclineInvitation(ctx, carolInv.ID, carol.ID)
	require.ErrorIs(t, err, entities.ErrInvitationNotFound)

	_, err = repo.GetMembership(ctx, team.ID, carol.ID)
	require.ErrorIs(t, err, entities.ErrAccessDenied)

	members, err := repo.ListMembers(ctx, team.ID)
	require.NoError(t, err)
	require.Len(t, members, 2)
	for _, m := range members {
		require.NotEqual(t, entities.UnknownEmail, m.Email)
	}

	require.NoError(t, repo.DeleteTeam(ctx, team.ID))
	_, err = repo.GetTeam(ctx, team.ID)
	require.ErrorIs(t, err, entities.ErrTeamNotFound)
	require.ErrorIs(t, repo.DeleteTeam(ctx, team.ID), entities.ErrTeamNotFound)
}

func TestWorkSessionIntegration(t *testing.T) {
	ctx := context.Background()

	cfg, cleanup := setupPostgres(t)
	t.Cleanup(cleanup)

	repo := New(ctx, testLogger(t), cfg)
	require.NoError(t, repo.OnStart(ctx))
	t.Cleanup(func() { _ = repo.OnStop(ctx) })

	alice := ensureUser(t, ctx, repo, "alice@example.com")

	// re-provisioning the same subject updates the email in place
	again, err := repo.EnsureUser(ctx, entities.Caller{ID: alice.ID, Email: "alice.m@example.com"})
	require.NoError(t, err)
	require.Equal(t, alice.ID, again.ID)
	require.Equal(t, "alice.m@example.com", again.Email)
	require.Equal(t, alice.CreatedAt, again.CreatedAt)
	alice = again

	due := time.Now().Add(48 * time.Hour).UTC().Truncate(time.Second)
	todo, err := repo.CreateTodo(ctx, entities.Todo{
		UserID:      alice.ID,
		Name:        "write release notes",
		Description: "v2.4 changelog",
		DueDate:     due,
		Status:      entities.StatusNotStarted,
	})
	require.NoError(t, err)
	require.Empty(t, todo.TeamID)

	session, err := repo.StartSession(ctx, todo.ID, alice.ID)
	require.NoError(t, err)
	require.Nil(t, session.EndedAt)
	require.Nil(t, session.DurationMinutes)

	// one open session per (todo, user)
	_, err = repo.StartSession(ctx, todo.ID, alice.ID)
	require.ErrorIs(t, err, entities.ErrSessionActive)

	active, err := repo.ListActiveSessions(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.Equal(t, todo.ID, active[0].Todo.ID)

	stopped, err := repo.StopSession(ctx, session.ID, alice.ID)
	require.NoError(t, err)
	require.NotNil(t, stopped.EndedAt)
	require.NotNil(t, stopped.DurationMinutes)
	require.Equal(t, int64(0), *stopped.DurationMinutes)

	_, err = repo.StopSession(ctx, session.ID, alice.ID)
	require.ErrorIs(t, err, entities.ErrSessionEnded)

	_, err = repo.StopSession(ctx, session.ID, "0e9f7d43-7a8f-4f2e-86c9-d0a1b2c3d4e5")
	require.ErrorIs(t, err, entities.ErrSessionNotFound)

	// ended session frees the slot for a new one
	second, err := repo.StartSession(ctx, todo.ID, alice.ID)
	require.NoError(t, err)
	require.NotEqual(t, session.ID, second.ID)

	// duration counts whole minutes on the database clock
	execSQL(t, cfg, `UPDATE work_sessions SET started_at = now() - interval '125 minutes 30 seconds' WHERE id = $1`, second.ID)
	stopped, err = repo.StopSession(ctx, second.ID, alice.ID)
	require.NoError(t, err)
	require.Equal(t, int64(125), *stopped.DurationMinutes)

	// a started_at ahead of the clock clamps to zero instead of
	// violating the non-negative constraint
	third, err := repo.StartSession(ctx, todo.ID, alice.ID)
	require.NoError(t, err)
	execSQL(t, cfg, `UPDATE work_sessions SET started_at = now() + interval '5 minutes' WHERE id = $1`, third.ID)
	stopped, err = repo.StopSession(ctx, third.ID, alice.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), *stopped.DurationMinutes)

	sessions, err := repo.ListSessionsByTodo(ctx, todo.ID)
	require.NoError(t, err)
	require.Len(t, sessions, 3)
	for _, s := range sessions {
		require.Equal(t, alice.Email, s.UserEmail)
	}

	require.NoError(t, repo.DeleteTodo(ctx, todo.ID))
	_, err = repo.GetTodo(ctx, todo.ID)
	require.ErrorIs(t, err, entities.ErrTodoNotFound)
}

func TestTodoListingIntegration(t *testing.T) {
	ctx := context.Background()

	cfg, cleanup := setupPostgres(t)
	t.Cleanup(cleanup)

	repo := New(ctx, testLogger(t), cfg)
	require.NoError(t, repo.OnStart(ctx))
	t.Cleanup(func() { _ = repo.OnStop(ctx) })

	owner := ensureUser(t, ctx, repo, "owner@example.com")
	member := ensureUser(t, ctx, repo, "member@example.com")
	outsider := ensureUser(t, ctx, repo, "outsider@example.com")

	team, err := repo.CreateTeam(ctx, entities.Team{Name: "platform", MaxMembers: 5}, owner.ID)
	require.NoError(t, err)

	inv, err := repo.CreateInvitation(ctx, team.ID, member.Email, owner.ID)
	require.NoError(t, err)
	require.NoError(t, repo.AcceptInvitation(ctx, inv.ID, member.ID))

	due := time.Now().Add(24 * time.Hour)
	teamTodo, err := repo.CreateTodo(ctx, entities.Todo{
		UserID: owner.ID, TeamID: team.ID,
		Name: "shared task", Description: "for the team",
		DueDate: due, Status: entities.StatusInProgress,
	})
	require.NoError(t, err)

	_, err = repo.CreateTodo(ctx, entities.Todo{
		UserID: owner.ID,
		Name:   "private task", Description: "owner only",
		DueDate: due.Add(24 * time.Hour), Status: entities.StatusNotStarted,
	})
	require.NoError(t, err)

	// members see team todos, outsiders do not
	visible, err := repo.ListTodos(ctx, member.ID, entities.TodoFilter{})
	require.NoError(t, err)
	require.Len(t, visible, 1)
	require.Equal(t, teamTodo.ID, visible[0].ID)

	visible, err = repo.ListTodos(ctx, outsider.ID, entities.TodoFilter{})
	require.NoError(t, err)
	require.Empty(t, visible)

	all, err := repo.ListTodos(ctx, owner.ID, entities.TodoFilter{SortBy: "due_date"})
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, teamTodo.ID, all[0].ID)

	inProgress, err := repo.ListTodos(ctx, owner.ID, entities.TodoFilter{Status: entities.StatusInProgress})
	require.NoError(t, err)
	require.Len(t, inProgress, 1)

	done := entities.StatusCompleted
	updated, err := repo.UpdateTodo(ctx, teamTodo.ID, entities.TodoUpdate{Status: &done})
	require.NoError(t, err)
	require.Equal(t, entities.StatusCompleted, updated.Status)

	// deleting the team takes its todos and their sessions with it,
	// leaving personal todos untouched
	_, err = repo.StartSession(ctx, teamTodo.ID, member.ID)
	require.NoError(t, err)

	require.NoError(t, repo.DeleteTeam(ctx, team.ID))

	_, err = repo.GetTodo(ctx, teamTodo.ID)
	require.ErrorIs(t, err, entities.ErrTodoNotFound)

	active, err := repo.ListActiveSessions(ctx, member.ID)
	require.NoError(t, err)
	require.Empty(t, active)

	remaining, err := repo.ListTodos(ctx, owner.ID, entities.TodoFilter{})
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	require.Equal(t, "private task", remaining[0].Name)
}

func setupPostgres(t *testing.T) (*config.Config, func()) {
	t.Helper()

	pool, err := dockertest.NewPool("")
	require.NoError(t, err)

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_PASSWORD=postgres",
			"POSTGRES_USER=postgres",
			"POSTGRES_DB=team_todo_db",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
	})
	require.NoError(t, err)

	hostPort := resource.GetPort("5432/tcp")

	port, err := strconv.Atoi(hostPort)
	require.NoError(t, err)
	migrationsDir, err := filepath.Abs(filepath.Join("..", "..", "..", "db", "migrations"))
	require.NoError(t, err)
	require.DirExists(t, migrationsDir)

	cfg := &config.Config{
		Server: config.ServerConfig{Host: "0.0.0.0", Port: 8080, ShutdownTimeout: 5 * time.Second},
		HTTP:   config.HTTPConfig{RequestTimeout: 5 * time.Second},
		Postgres: config.PostgresConfig{
			Host:           "localhost",
			Port:           port,
			User:           "postgres",
			Password:       "postgres",
			DBName:         "team_todo_db",
			SSLMode:        "disable",
			MigrationsDir:  migrationsDir,
			QueryTimeout:   10 * time.Second,
			MigrateTimeout: 20 * time.Second,
			MaxConns:       4,
			MinConns:       1,
		},
	}

	require.NoError(t, pool.Retry(func() error {
		db, err := sql.Open("postgres", "host=localhost port="+hostPort+" user=postgres password=postgres dbname=team_todo_db sslmode=disable")
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()
		return db.Ping()
	}))

	cleanup := func() {
		_ = pool.Purge(resource)
	}

	return cfg, cleanup
}

func testLogger(t *testing.T) *zap.SugaredLogger {
	t.Helper()

	l, _ := zap.NewDevelopment()
	t.Cleanup(func() { _ = l.Sync() })
	return l.Sugar()
}
