package repository

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/deppfellow/agile/internal/database"
	"github.com/deppfellow/agile/internal/model"
	"github.com/deppfellow/agile/internal/sqlerr"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var migrateOnce sync.Once

// setupRepos connects to AGILE_TEST_DATABASE_URL, migrates it and empties
// every table. The test is skipped when the variable is not set.
func setupRepos(t *testing.T) *Repositories {
	t.Helper()

	dsn := os.Getenv("AGILE_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("AGILE_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	logger := zerolog.Nop()

	var migrateErr error
	migrateOnce.Do(func() {
		migrateErr = database.Migrate(ctx, &logger, dsn)
	})
	require.NoError(t, migrateErr)

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, `TRUNCATE task_assigned, project_assigned, reports, comments, notifications,
		messages, chats, tasks, projects, priorities, statuses, users, access_level_settings,
		access_settings, access_levels RESTART IDENTITY CASCADE`)
	require.NoError(t, err)

	return NewRepositories(database.FromPool(pool, 5*time.Second, &logger))
}

type fixture struct {
	role     *model.AccessLevel
	user     *model.User
	status   *model.Status
	priority *model.Priority
	project  *model.Project
}

func seedFixture(t *testing.T, repos *Repositories) fixture {
	t.Helper()
	ctx := context.Background()

	role, err := repos.AccessLevels.Create(ctx, &model.CreateAccessLevel{Name: "Manager"})
	require.NoError(t, err)

	user, err := repos.Users.Create(ctx, &model.CreateUser{Name: "John", Email: "john@example.com", RoleID: role.ID})
	require.NoError(t, err)

	status, err := repos.Statuses.Create(ctx, &model.CreateStatus{Name: "Open", Type: model.StatusTypeProject})
	require.NoError(t, err)

	priority, err := repos.Priorities.Create(ctx, &model.CreatePriority{Name: "High"})
	require.NoError(t, err)

	project, err := repos.Projects.Create(ctx, &model.CreateProject{
		Title:      "Alpha",
		StartDate:  time.Now(),
		StatusID:   status.ID,
		OwnerID:    user.ID,
		PriorityID: priority.ID,
	})
	require.NoError(t, err)

	return fixture{role: role, user: user, status: status, priority: priority, project: project}
}

func pgCode(t *testing.T, err error) string {
	t.Helper()
	var pgErr *pgconn.PgError
	require.ErrorAs(t, err, &pgErr)
	return pgErr.Code
}

func TestCreateAndGetByIDRoundTrip(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	f := seedFixture(t, repos)

	got, err := repos.Users.GetByID(ctx, f.user.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "John", got.Name)
	assert.Equal(t, "john@example.com", got.Email)
	assert.Nil(t, got.Avatar)
	assert.False(t, got.CreatedAt.IsZero())
	assert.False(t, got.RegistrationDate.IsZero())
}

func TestGetByIDMissingReturnsNil(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	user, err := repos.Users.GetByID(ctx, 999)
	assert.NoError(t, err)
	assert.Nil(t, user)

	withRelations, err := repos.Projects.GetWithRelations(ctx, 999)
	assert.NoError(t, err)
	assert.Nil(t, withRelations)
}

func TestUniqueEmail(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	f := seedFixture(t, repos)

	_, err := repos.Users.Create(ctx, &model.CreateUser{Name: "Other", Email: "john@example.com", RoleID: f.role.ID})
	require.Error(t, err)
	assert.Equal(t, sqlerr.UniqueViolation, sqlerr.ErrCode(err))
	assert.Equal(t, "23505", pgCode(t, err))

	all, err := repos.Users.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestForeignKeyViolation(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	f := seedFixture(t, repos)

	_, err := repos.Tasks.Create(ctx, &model.CreateTask{
		Title:      "Orphan",
		PriorityID: f.priority.ID,
		StatusID:   f.status.ID,
		ExecutorID: f.user.ID,
		ProjectID:  999,
	})
	require.Error(t, err)
	assert.Equal(t, sqlerr.ForeignKeyViolation, sqlerr.ErrCode(err))

	all, err := repos.Tasks.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestUpdateForeignKeyViolation(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	f := seedFixture(t, repos)

	task, err := repos.Tasks.Create(ctx, &model.CreateTask{
		Title:      "Design",
		PriorityID: f.priority.ID,
		StatusID:   f.status.ID,
		ExecutorID: f.user.ID,
		ProjectID:  f.project.ID,
	})
	require.NoError(t, err)

	missing := int64(999)
	err = repos.Tasks.Update(ctx, task.ID, &model.UpdateTask{ProjectID: &missing})
	require.Error(t, err)
	assert.Equal(t, sqlerr.ForeignKeyViolation, sqlerr.ErrCode(err))

	got, err := repos.Tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, f.project.ID, got.ProjectID)
}

func TestStatusTypeCheck(t *testing.T) {
	repos := setupRepos(t)

	_, err := repos.Statuses.Create(context.Background(), &model.CreateStatus{Name: "Odd", Type: "epic"})
	require.Error(t, err)
	assert.Equal(t, sqlerr.CheckViolation, sqlerr.ErrCode(err))
}

func TestDeleteUserCascadesAssignments(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	f := seedFixture(t, repos)

	member, err := repos.Users.Create(ctx, &model.CreateUser{Name: "Jane", Email: "jane@example.com", RoleID: f.role.ID})
	require.NoError(t, err)

	_, err = repos.ProjectAssigned.Create(ctx, &model.CreateProjectAssigned{UserID: member.ID, ProjectID: f.project.ID})
	require.NoError(t, err)

	require.NoError(t, repos.Users.Delete(ctx, member.ID))

	assignment, err := repos.ProjectAssigned.GetByID(ctx, member.ID, f.project.ID)
	require.NoError(t, err)
	assert.Nil(t, assignment)

	project, err := repos.Projects.GetByID(ctx, f.project.ID)
	require.NoError(t, err)
	assert.NotNil(t, project)
}

func TestDeleteTaskCascadesAssignments(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	f := seedFixture(t, repos)

	task, err := repos.Tasks.Create(ctx, &model.CreateTask{
		Title:      "Design",
		PriorityID: f.priority.ID,
		StatusID:   f.status.ID,
		ExecutorID: f.user.ID,
		ProjectID:  f.project.ID,
	})
	require.NoError(t, err)

	_, err = repos.TaskAssigned.Create(ctx, &model.CreateTaskAssigned{UserID: f.user.ID, TaskID: task.ID})
	require.NoError(t, err)

	require.NoError(t, repos.Tasks.Delete(ctx, task.ID))

	assignment, err := repos.TaskAssigned.GetByID(ctx, f.user.ID, task.ID)
	require.NoError(t, err)
	assert.Nil(t, assignment)

	user, err := repos.Users.GetByID(ctx, f.user.ID)
	require.NoError(t, err)
	assert.NotNil(t, user)
}

func TestDeleteProjectCascadesAssignments(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	f := seedFixture(t, repos)

	_, err := repos.ProjectAssigned.Create(ctx, &model.CreateProjectAssigned{UserID: f.user.ID, ProjectID: f.project.ID})
	require.NoError(t, err)

	require.NoError(t, repos.Projects.Delete(ctx, f.project.ID))

	assignments, err := repos.ProjectAssigned.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, assignments)

	user, err := repos.Users.GetByID(ctx, f.user.ID)
	require.NoError(t, err)
	assert.NotNil(t, user)
}

func TestDuplicateAssignment(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	f := seedFixture(t, repos)

	in := &model.CreateProjectAssigned{UserID: f.user.ID, ProjectID: f.project.ID}
	_, err := repos.ProjectAssigned.Create(ctx, in)
	require.NoError(t, err)

	_, err = repos.ProjectAssigned.Create(ctx, in)
	assert.Equal(t, sqlerr.UniqueViolation, sqlerr.ErrCode(err))
}

func TestProjectWithRelations(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	f := seedFixture(t, repos)

	task, err := repos.Tasks.Create(ctx, &model.CreateTask{
		Title:      "Design",
		PriorityID: f.priority.ID,
		StatusID:   f.status.ID,
		ExecutorID: f.user.ID,
		ProjectID:  f.project.ID,
	})
	require.NoError(t, err)

	chat, err := repos.Chats.Create(ctx, &model.CreateChat{ProjectID: &f.project.ID})
	require.NoError(t, err)

	_, err = repos.ProjectAssigned.Create(ctx, &model.CreateProjectAssigned{UserID: f.user.ID, ProjectID: f.project.ID})
	require.NoError(t, err)

	bare, err := repos.Projects.GetByID(ctx, f.project.ID)
	require.NoError(t, err)
	assert.Equal(t, f.project.Title, bare.Title)

	full, err := repos.Projects.GetWithRelations(ctx, f.project.ID)
	require.NoError(t, err)
	require.NotNil(t, full)

	assert.Equal(t, *bare, full.Project)
	assert.Equal(t, "Open", full.Status.Name)
	assert.Equal(t, "John", full.Owner.Name)
	assert.Equal(t, "High", full.Priority.Name)
	require.NotNil(t, full.Chat)
	assert.Equal(t, chat.ID, full.Chat.ID)
	require.Len(t, full.Tasks, 1)
	assert.Equal(t, task.ID, full.Tasks[0].ID)
	assert.Empty(t, full.Reports)
	require.Len(t, full.AssignedUsers, 1)
	assert.Equal(t, f.user.ID, full.AssignedUsers[0].ID)
}

func TestTaskWithRelations(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	f := seedFixture(t, repos)

	task, err := repos.Tasks.Create(ctx, &model.CreateTask{
		Title:      "Design",
		PriorityID: f.priority.ID,
		StatusID:   f.status.ID,
		ExecutorID: f.user.ID,
		ProjectID:  f.project.ID,
	})
	require.NoError(t, err)

	full, err := repos.Tasks.GetWithRelations(ctx, task.ID)
	require.NoError(t, err)
	require.NotNil(t, full)

	assert.Equal(t, "Alpha", full.Project.Title)
	assert.Equal(t, "John", full.Executor.Name)
	assert.Nil(t, full.Chat)
	assert.Empty(t, full.AssignedUsers)
}

func TestUpdatePartialAndClear(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	f := seedFixture(t, repos)

	desc := "first draft"
	title := "Alpha 2"
	require.NoError(t, repos.Projects.Update(ctx, f.project.ID, &model.UpdateProject{
		Title:       &title,
		Description: model.NewNullable(desc),
	}))

	got, err := repos.Projects.GetByID(ctx, f.project.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alpha 2", got.Title)
	require.NotNil(t, got.Description)
	assert.Equal(t, desc, *got.Description)
	assert.Equal(t, f.project.OwnerID, got.OwnerID)

	require.NoError(t, repos.Projects.Update(ctx, f.project.ID, &model.UpdateProject{
		Description: model.Null[string](),
	}))

	got, err = repos.Projects.GetByID(ctx, f.project.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Description)
	assert.Equal(t, "Alpha 2", got.Title)
}

func TestUpdateAndDeleteMissingRowSucceed(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	name := "Nobody"
	assert.NoError(t, repos.Priorities.Update(ctx, 999, &model.UpdatePriority{Name: &name}))
	assert.NoError(t, repos.Priorities.Delete(ctx, 999))
}

func TestGetAllOrderedByKey(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	for _, name := range []string{"Low", "Medium", "High"} {
		_, err := repos.Priorities.Create(ctx, &model.CreatePriority{Name: name})
		require.NoError(t, err)
	}

	all, err := repos.Priorities.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Low", all[0].Name)
	assert.Equal(t, "High", all[2].Name)
}

func TestGetAllExcludesDeleted(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	var ids []int64
	for _, name := range []string{"Low", "Medium", "High"} {
		p, err := repos.Priorities.Create(ctx, &model.CreatePriority{Name: name})
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}

	require.NoError(t, repos.Priorities.Delete(ctx, ids[1]))

	all, err := repos.Priorities.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, ids[0], all[0].ID)
	assert.Equal(t, "Low", all[0].Name)
	assert.Equal(t, ids[2], all[1].ID)
	assert.Equal(t, "High", all[1].Name)
}

func TestAccessLevelSettings(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	level, err := repos.AccessLevels.Create(ctx, &model.CreateAccessLevel{Name: "Executor"})
	require.NoError(t, err)

	setting, err := repos.AccessSettings.Create(ctx, &model.CreateAccessSetting{Permission: "create_project"})
	require.NoError(t, err)

	_, err = repos.AccessLevelSettings.Create(ctx, &model.CreateAccessLevelSetting{
		AccessLevelID:   level.ID,
		AccessSettingID: setting.ID,
		Allowed:         true,
	})
	require.NoError(t, err)

	full, err := repos.AccessLevelSettings.GetWithRelations(ctx, level.ID, setting.ID)
	require.NoError(t, err)
	require.NotNil(t, full)
	assert.True(t, full.Allowed)
	assert.Equal(t, "Executor", full.AccessLevel.Name)
	assert.Equal(t, "create_project", full.AccessSetting.Permission)

	denied := false
	require.NoError(t, repos.AccessLevelSettings.Update(ctx, level.ID, setting.ID, &model.UpdateAccessLevelSetting{Allowed: &denied}))

	row, err := repos.AccessLevelSettings.GetByID(ctx, level.ID, setting.ID)
	require.NoError(t, err)
	assert.False(t, row.Allowed)

	_, err = repos.AccessSettings.GetForAccessLevel(ctx, level.ID)
	assert.ErrorIs(t, err, ErrNotApplicable)

	require.NoError(t, repos.AccessLevels.Delete(ctx, level.ID))
	row, err = repos.AccessLevelSettings.GetByID(ctx, level.ID, setting.ID)
	require.NoError(t, err)
	assert.Nil(t, row)
}

func TestChatWithRelationsAndParticipants(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	f := seedFixture(t, repos)

	member, err := repos.Users.Create(ctx, &model.CreateUser{Name: "Jane", Email: "jane@example.com", RoleID: f.role.ID})
	require.NoError(t, err)

	for _, id := range []int64{f.user.ID, member.ID} {
		_, err := repos.ProjectAssigned.Create(ctx, &model.CreateProjectAssigned{UserID: id, ProjectID: f.project.ID})
		require.NoError(t, err)
	}

	chat, err := repos.Chats.Create(ctx, &model.CreateChat{ProjectID: &f.project.ID})
	require.NoError(t, err)

	first := time.Now().Add(-time.Minute)
	_, err = repos.Messages.Create(ctx, &model.CreateMessage{Content: "hello", UserID: f.user.ID, ChatID: chat.ID, SentAt: &first})
	require.NoError(t, err)
	_, err = repos.Messages.Create(ctx, &model.CreateMessage{Content: "hi", UserID: member.ID, ChatID: chat.ID})
	require.NoError(t, err)

	full, err := repos.Chats.GetWithRelations(ctx, chat.ID)
	require.NoError(t, err)
	require.NotNil(t, full.Project)
	assert.Equal(t, "Alpha", full.Project.Title)
	assert.Nil(t, full.Task)
	require.Len(t, full.Messages, 2)
	assert.Equal(t, "hello", full.Messages[0].Content)

	participants, err := repos.Users.ListChatParticipants(ctx, chat.ID)
	require.NoError(t, err)
	assert.Len(t, participants, 2)

	unattached, err := repos.Chats.Create(ctx, &model.CreateChat{})
	require.NoError(t, err)
	assert.Nil(t, unattached.ProjectID)
	assert.Nil(t, unattached.TaskID)
}

func TestUserWithRelations(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	f := seedFixture(t, repos)

	_, err := repos.Notifications.Create(ctx, &model.CreateNotification{Content: "welcome", UserID: f.user.ID})
	require.NoError(t, err)

	full, err := repos.Users.GetWithRelations(ctx, f.user.ID)
	require.NoError(t, err)
	require.NotNil(t, full)
	assert.Equal(t, "Manager", full.Role.Name)
	require.Len(t, full.OwnedProjects, 1)
	assert.Equal(t, "Alpha", full.OwnedProjects[0].Title)
	require.Len(t, full.Notifications, 1)
	assert.Empty(t, full.Messages)
	assert.Empty(t, full.AssignedProjects)
	assert.Empty(t, full.AssignedTasks)
}

func TestCommentAndReportRelations(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	f := seedFixture(t, repos)

	comment, err := repos.Comments.Create(ctx, &model.CreateComment{Content: "looks good", UserID: f.user.ID, ProjectID: &f.project.ID})
	require.NoError(t, err)

	fullComment, err := repos.Comments.GetWithRelations(ctx, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, "John", fullComment.User.Name)
	require.NotNil(t, fullComment.Project)
	assert.Nil(t, fullComment.Task)

	report, err := repos.Reports.Create(ctx, &model.CreateReport{Title: "Weekly", ProjectID: f.project.ID})
	require.NoError(t, err)

	fullReport, err := repos.Reports.GetWithRelations(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alpha", fullReport.Project.Title)
}
