package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/deppfellow/agile/internal/database"
	"github.com/deppfellow/agile/internal/model"
	"github.com/jackc/pgx/v5"
)

type AccessLevelRepository struct {
	crud[model.AccessLevel]
}

func NewAccessLevelRepository(db *database.Database) *AccessLevelRepository {
	return &AccessLevelRepository{crud[model.AccessLevel]{db: db, t: accessLevels}}
}

func (r *AccessLevelRepository) Create(ctx context.Context, in *model.CreateAccessLevel) (*model.AccessLevel, error) {
	return r.create(ctx, map[string]any{"name": in.Name})
}

func (r *AccessLevelRepository) GetByID(ctx context.Context, id int64) (*model.AccessLevel, error) {
	return r.get(ctx, sq.Eq{"id": id})
}

// GetWithRelations loads the level together with its users and its
// permission grants.
func (r *AccessLevelRepository) GetWithRelations(ctx context.Context, id int64) (*model.AccessLevelWithRelations, error) {
	var out *model.AccessLevelWithRelations
	err := r.read(ctx, func(tx pgx.Tx) error {
		level, err := getRow[model.AccessLevel](ctx, tx, accessLevels, sq.Eq{"id": id})
		if err != nil || level == nil {
			return err
		}

		v := model.AccessLevelWithRelations{AccessLevel: *level}
		b := &pgx.Batch{}
		queueList(b, &v.Users, users.queryWhere("role_id"), id)
		queueList(b, &v.Settings, accessLevelSettings.queryWhere("access_level_id"), id)
		if err := sendBatch(ctx, tx, b); err != nil {
			return err
		}

		out = &v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *AccessLevelRepository) Update(ctx context.Context, id int64, in *model.UpdateAccessLevel) error {
	values := map[string]any{}
	setPtr(values, "name", in.Name)
	return r.update(ctx, sq.Eq{"id": id}, values)
}

func (r *AccessLevelRepository) Delete(ctx context.Context, id int64) error {
	return r.delete(ctx, sq.Eq{"id": id})
}

func (r *AccessLevelRepository) GetAll(ctx context.Context) ([]model.AccessLevel, error) {
	return r.all(ctx)
}

type AccessSettingRepository struct {
	crud[model.AccessSetting]
}

func NewAccessSettingRepository(db *database.Database) *AccessSettingRepository {
	return &AccessSettingRepository{crud[model.AccessSetting]{db: db, t: accessSettings}}
}

func (r *AccessSettingRepository) Create(ctx context.Context, in *model.CreateAccessSetting) (*model.AccessSetting, error) {
	return r.create(ctx, map[string]any{"permission": in.Permission})
}

func (r *AccessSettingRepository) GetByID(ctx context.Context, id int64) (*model.AccessSetting, error) {
	return r.get(ctx, sq.Eq{"id": id})
}

func (r *AccessSettingRepository) GetWithRelations(ctx context.Context, id int64) (*model.AccessSettingWithRelations, error) {
	var out *model.AccessSettingWithRelations
	err := r.read(ctx, func(tx pgx.Tx) error {
		setting, err := getRow[model.AccessSetting](ctx, tx, accessSettings, sq.Eq{"id": id})
		if err != nil || setting == nil {
			return err
		}

		v := model.AccessSettingWithRelations{AccessSetting: *setting}
		b := &pgx.Batch{}
		queueList(b, &v.LevelSettings, accessLevelSettings.queryWhere("access_setting_id"), id)
		if err := sendBatch(ctx, tx, b); err != nil {
			return err
		}

		out = &v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *AccessSettingRepository) Update(ctx context.Context, id int64, in *model.UpdateAccessSetting) error {
	values := map[string]any{}
	setPtr(values, "permission", in.Permission)
	return r.update(ctx, sq.Eq{"id": id}, values)
}

func (r *AccessSettingRepository) Delete(ctx context.Context, id int64) error {
	return r.delete(ctx, sq.Eq{"id": id})
}

func (r *AccessSettingRepository) GetAll(ctx context.Context) ([]model.AccessSetting, error) {
	return r.all(ctx)
}

// GetForAccessLevel always fails with ErrNotApplicable: a permission is not
// tied to a level directly, only through AccessLevelSetting rows.
func (r *AccessSettingRepository) GetForAccessLevel(_ context.Context, _ int64) ([]model.AccessSetting, error) {
	return nil, ErrNotApplicable
}

// AccessLevelSettingRepository is keyed by (access level, access setting).
type AccessLevelSettingRepository struct {
	crud[model.AccessLevelSetting]
}

func NewAccessLevelSettingRepository(db *database.Database) *AccessLevelSettingRepository {
	return &AccessLevelSettingRepository{crud[model.AccessLevelSetting]{db: db, t: accessLevelSettings}}
}

func accessLevelSettingKey(levelID, settingID int64) sq.Eq {
	return sq.Eq{"access_level_id": levelID, "access_setting_id": settingID}
}

func (r *AccessLevelSettingRepository) Create(ctx context.Context, in *model.CreateAccessLevelSetting) (*model.AccessLevelSetting, error) {
	return r.create(ctx, map[string]any{
		"access_level_id":   in.AccessLevelID,
		"access_setting_id": in.AccessSettingID,
		"allowed":           in.Allowed,
	})
}

func (r *AccessLevelSettingRepository) GetByID(ctx context.Context, levelID, settingID int64) (*model.AccessLevelSetting, error) {
	return r.get(ctx, accessLevelSettingKey(levelID, settingID))
}

var accessLevelSettingWithRelationsSQL = "SELECT " +
	accessLevelSettings.cols("als") + ", " + accessLevels.cols("al") + ", " + accessSettings.cols("s") +
	" FROM access_level_settings als" +
	" JOIN access_levels al ON al.id = als.access_level_id" +
	" JOIN access_settings s ON s.id = als.access_setting_id" +
	" WHERE als.access_level_id = $1 AND als.access_setting_id = $2"

func (r *AccessLevelSettingRepository) GetWithRelations(ctx context.Context, levelID, settingID int64) (*model.AccessLevelSettingWithRelations, error) {
	var out *model.AccessLevelSettingWithRelations
	err := r.read(ctx, func(tx pgx.Tx) error {
		v := model.AccessLevelSettingWithRelations{
			AccessLevel:   &model.AccessLevel{},
			AccessSetting: &model.AccessSetting{},
		}
		found, err := scanJoined(ctx, tx, accessLevelSettingWithRelationsSQL, []any{levelID, settingID}, fields(
			accessLevelSettingFields(&v.AccessLevelSetting),
			accessLevelFields(v.AccessLevel),
			accessSettingFields(v.AccessSetting),
		)...)
		if found {
			out = &v
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *AccessLevelSettingRepository) Update(ctx context.Context, levelID, settingID int64, in *model.UpdateAccessLevelSetting) error {
	values := map[string]any{}
	setPtr(values, "allowed", in.Allowed)
	return r.update(ctx, accessLevelSettingKey(levelID, settingID), values)
}

func (r *AccessLevelSettingRepository) Delete(ctx context.Context, levelID, settingID int64) error {
	return r.delete(ctx, accessLevelSettingKey(levelID, settingID))
}

func (r *AccessLevelSettingRepository) GetAll(ctx context.Context) ([]model.AccessLevelSetting, error) {
	return r.all(ctx)
}
