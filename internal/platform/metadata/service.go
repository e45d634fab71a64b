package metadata

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// --- Generic Accessors ---

// GetValue retrieves a value for a given key from the metadata table.
func GetValue(db *gorm.DB, key string) (string, error) {
	var meta Metadata
	err := db.Where("key = ?", key).First(&meta).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// If the key doesn't exist, return an empty string, which is a valid default.
			return "", nil
		}
		return "", err
	}
	return meta.Value, nil
}

// SetValue creates or updates a value for a given key.
func SetValue(db *gorm.DB, key, value string) error {
	// Use GORM's OnConflict clause for an efficient and atomic "upsert" operation.
	meta := Metadata{
		Key:   key,
		Value: value,
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&meta).Error
}

// --- Specific Helpers ---

// GetQuestionnaireVersion 返回当前生效的问卷版本。
// 若从未写入，先落盘默认版本再返回。
func GetQuestionnaireVersion(db *gorm.DB) (string, error) {
	version, err := GetValue(db, QuestionnaireVersionKey)
	if err != nil {
		return "", err
	}
	if version == "" {
		if err := SetValue(db, QuestionnaireVersionKey, DefaultQuestionnaireVersion); err != nil {
			return "", err
		}
		return DefaultQuestionnaireVersion, nil
	}
	return version, nil
}
