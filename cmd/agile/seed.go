package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/deppfellow/agile/internal/database"
	"github.com/deppfellow/agile/internal/lib/utils"
	"github.com/deppfellow/agile/internal/model"
	"github.com/deppfellow/agile/internal/repository"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const seedOwnerEmail = "john@example.com"

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the schema, insert one demo row per table and print each as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, loggerService, err := bootstrap()
		if err != nil {
			return err
		}
		defer loggerService.Shutdown()

		db, err := database.New(cfg, log, loggerService)
		if err != nil {
			return err
		}
		defer db.Close()

		return runSeed(cmd.Context(), log, cfg.Database.DSN(), repository.NewRepositories(db), os.Stdout)
	},
}

// runSeed creates the schema if needed, then seeds it.
func runSeed(ctx context.Context, log *zerolog.Logger, dsn string, repos *repository.Repositories, w io.Writer) error {
	if err := database.Migrate(ctx, log, dsn); err != nil {
		log.Error().Err(err).Msg("migration failed")
		return err
	}
	return seed(ctx, repos, w)
}

// rowReader is the read surface every single-id repository shares.
type rowReader[T, R any] interface {
	GetByID(ctx context.Context, id int64) (*T, error)
	GetWithRelations(ctx context.Context, id int64) (*R, error)
}

// pairReader is rowReader for tables keyed by two ids.
type pairReader[T, R any] interface {
	GetByID(ctx context.Context, first, second int64) (*T, error)
	GetWithRelations(ctx context.Context, first, second int64) (*R, error)
}

func readBack[T, R any](ctx context.Context, w io.Writer, label string, repo rowReader[T, R], id int64) error {
	row, err := repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	rel, err := repo.GetWithRelations(ctx, id)
	if err != nil {
		return err
	}
	return printReadBack(w, label, row == nil || rel == nil, row, rel)
}

func readBackPair[T, R any](ctx context.Context, w io.Writer, label string, repo pairReader[T, R], first, second int64) error {
	row, err := repo.GetByID(ctx, first, second)
	if err != nil {
		return err
	}
	rel, err := repo.GetWithRelations(ctx, first, second)
	if err != nil {
		return err
	}
	return printReadBack(w, label, row == nil || rel == nil, row, rel)
}

func printReadBack(w io.Writer, label string, missing bool, row, rel interface{}) error {
	if missing {
		return fmt.Errorf("%s: created row not found on read-back", label)
	}
	if err := utils.PrintJSON(w, label+" by id", row); err != nil {
		return err
	}
	return utils.PrintJSON(w, label+" with relations", rel)
}

// seed walks the schema in dependency order, creating one row per table,
// then reads every row back by id and with its relations.
// A database that already holds the demo owner is left untouched.
func seed(ctx context.Context, repos *repository.Repositories, w io.Writer) error {
	existing, err := repos.Users.GetByEmail(ctx, seedOwnerEmail)
	if err != nil {
		return err
	}
	if existing != nil {
		_, err := fmt.Fprintf(w, "database already seeded (user %d owns %s)\n", existing.ID, seedOwnerEmail)
		return err
	}

	emit := func(label string, v interface{}) error {
		return utils.PrintJSON(w, label, v)
	}

	role, err := repos.AccessLevels.Create(ctx, &model.CreateAccessLevel{Name: "Admin"})
	if err != nil {
		return err
	}
	if err := emit("access level", role); err != nil {
		return err
	}

	setting, err := repos.AccessSettings.Create(ctx, &model.CreateAccessSetting{Permission: "projects:write"})
	if err != nil {
		return err
	}
	if err := emit("access setting", setting); err != nil {
		return err
	}

	levelSetting, err := repos.AccessLevelSettings.Create(ctx, &model.CreateAccessLevelSetting{
		AccessLevelID:   role.ID,
		AccessSettingID: setting.ID,
		Allowed:         true,
	})
	if err != nil {
		return err
	}
	if err := emit("access level setting", levelSetting); err != nil {
		return err
	}

	user, err := repos.Users.Create(ctx, &model.CreateUser{Name: "John", Email: seedOwnerEmail, RoleID: role.ID})
	if err != nil {
		return err
	}
	if err := emit("user", user); err != nil {
		return err
	}

	projectStatus, err := repos.Statuses.Create(ctx, &model.CreateStatus{Name: "Active", Type: model.StatusTypeProject})
	if err != nil {
		return err
	}
	if err := emit("project status", projectStatus); err != nil {
		return err
	}

	taskStatus, err := repos.Statuses.Create(ctx, &model.CreateStatus{Name: "Open", Type: model.StatusTypeTask})
	if err != nil {
		return err
	}
	if err := emit("task status", taskStatus); err != nil {
		return err
	}

	priority, err := repos.Priorities.Create(ctx, &model.CreatePriority{Name: "High"})
	if err != nil {
		return err
	}
	if err := emit("priority", priority); err != nil {
		return err
	}

	project, err := repos.Projects.Create(ctx, &model.CreateProject{
		Title:      "Alpha",
		StartDate:  time.Now().UTC().Truncate(24 * time.Hour),
		StatusID:   projectStatus.ID,
		OwnerID:    user.ID,
		PriorityID: priority.ID,
	})
	if err != nil {
		return err
	}
	if err := emit("project", project); err != nil {
		return err
	}

	task, err := repos.Tasks.Create(ctx, &model.CreateTask{
		Title:      "Write the schema",
		PriorityID: priority.ID,
		StatusID:   taskStatus.ID,
		ExecutorID: user.ID,
		ProjectID:  project.ID,
	})
	if err != nil {
		return err
	}
	if err := emit("task", task); err != nil {
		return err
	}

	projectAssigned, err := repos.ProjectAssigned.Create(ctx, &model.CreateProjectAssigned{UserID: user.ID, ProjectID: project.ID})
	if err != nil {
		return err
	}
	if err := emit("project assignment", projectAssigned); err != nil {
		return err
	}

	taskAssigned, err := repos.TaskAssigned.Create(ctx, &model.CreateTaskAssigned{UserID: user.ID, TaskID: task.ID})
	if err != nil {
		return err
	}
	if err := emit("task assignment", taskAssigned); err != nil {
		return err
	}

	chat, err := repos.Chats.Create(ctx, &model.CreateChat{ProjectID: &project.ID})
	if err != nil {
		return err
	}
	if err := emit("chat", chat); err != nil {
		return err
	}

	message, err := repos.Messages.Create(ctx, &model.CreateMessage{Content: "Kick-off at 10:00", UserID: user.ID, ChatID: chat.ID})
	if err != nil {
		return err
	}
	if err := emit("message", message); err != nil {
		return err
	}

	notification, err := repos.Notifications.Create(ctx, &model.CreateNotification{Content: "Welcome to Alpha", UserID: user.ID})
	if err != nil {
		return err
	}
	if err := emit("notification", notification); err != nil {
		return err
	}

	comment, err := repos.Comments.Create(ctx, &model.CreateComment{Content: "Looks good", UserID: user.ID, TaskID: &task.ID})
	if err != nil {
		return err
	}
	if err := emit("comment", comment); err != nil {
		return err
	}

	report, err := repos.Reports.Create(ctx, &model.CreateReport{Title: "Week 1", ProjectID: project.ID})
	if err != nil {
		return err
	}
	if err := emit("report", report); err != nil {
		return err
	}

	reads := []func() error{
		func() error {
			return readBack[model.AccessLevel, model.AccessLevelWithRelations](ctx, w, "access level", repos.AccessLevels, role.ID)
		},
		func() error {
			return readBack[model.AccessSetting, model.AccessSettingWithRelations](ctx, w, "access setting", repos.AccessSettings, setting.ID)
		},
		func() error {
			return readBackPair[model.AccessLevelSetting, model.AccessLevelSettingWithRelations](ctx, w, "access level setting",
				repos.AccessLevelSettings, role.ID, setting.ID)
		},
		func() error {
			return readBack[model.User, model.UserWithRelations](ctx, w, "user", repos.Users, user.ID)
		},
		func() error {
			return readBack[model.Status, model.StatusWithRelations](ctx, w, "project status", repos.Statuses, projectStatus.ID)
		},
		func() error {
			return readBack[model.Status, model.StatusWithRelations](ctx, w, "task status", repos.Statuses, taskStatus.ID)
		},
		func() error {
			return readBack[model.Priority, model.PriorityWithRelations](ctx, w, "priority", repos.Priorities, priority.ID)
		},
		func() error {
			return readBack[model.Project, model.ProjectWithRelations](ctx, w, "project", repos.Projects, project.ID)
		},
		func() error {
			return readBack[model.Task, model.TaskWithRelations](ctx, w, "task", repos.Tasks, task.ID)
		},
		func() error {
			return readBackPair[model.ProjectAssigned, model.ProjectAssignedWithRelations](ctx, w, "project assignment",
				repos.ProjectAssigned, user.ID, project.ID)
		},
		func() error {
			return readBackPair[model.TaskAssigned, model.TaskAssignedWithRelations](ctx, w, "task assignment",
				repos.TaskAssigned, user.ID, task.ID)
		},
		func() error {
			return readBack[model.Chat, model.ChatWithRelations](ctx, w, "chat", repos.Chats, chat.ID)
		},
		func() error {
			return readBack[model.Message, model.MessageWithRelations](ctx, w, "message", repos.Messages, message.ID)
		},
		func() error {
			return readBack[model.Notification, model.NotificationWithRelations](ctx, w, "notification", repos.Notifications, notification.ID)
		},
		func() error {
			return readBack[model.Comment, model.CommentWithRelations](ctx, w, "comment", repos.Comments, comment.ID)
		},
		func() error {
			return readBack[model.Report, model.ReportWithRelations](ctx, w, "report", repos.Reports, report.ID)
		},
	}
	for _, read := range reads {
		if err := read(); err != nil {
			return err
		}
	}

	if _, err := repos.AccessSettings.GetForAccessLevel(ctx, role.ID); !errors.Is(err, repository.ErrNotApplicable) {
		return fmt.Errorf("access settings by access level: expected %v, got %v", repository.ErrNotApplicable, err)
	}
	_, err = fmt.Fprintf(w, "access settings by access level: %v\n", repository.ErrNotApplicable)
	return err
}
