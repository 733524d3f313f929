// Command legacy-import loads a mongodump of the legacy deployment
// (users.bson, categories.bson, tags.bson, notes.bson with embedded history
// arrays) into the relational schema.
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/inknote/core/internal/config"
	"github.com/inknote/core/internal/database"
	"github.com/inknote/core/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	configPath := flag.String("config", config.DefaultConfigPath, "Path to YAML config file")
	dumpDir := flag.String("dir", "dump", "Directory holding the mongodump .bson files")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	db, err := database.Connect(cfg, true)
	if err != nil {
		logger.Fatal("failed to connect database", zap.Error(err))
	}

	imp := importer{db: db, logger: logger}
	for _, step := range []struct {
		file string
		run  func([]map[string]interface{}) (int, error)
	}{
		{"users.bson", imp.importUsers},
		{"categories.bson", imp.importCategories},
		{"tags.bson", imp.importTags},
		{"notes.bson", imp.importNotes},
	} {
		rows, err := readCollection(filepath.Join(*dumpDir, step.file))
		if err != nil {
			logger.Fatal("failed to read collection", zap.String("file", step.file), zap.Error(err))
		}
		n, err := step.run(rows)
		if err != nil {
			logger.Fatal("import failed", zap.String("file", step.file), zap.Error(err))
		}
		logger.Info("collection imported", zap.String("file", step.file), zap.Int("rows", n))
	}
}

type importer struct {
	db     *gorm.DB
	logger *zap.Logger
}

func (i importer) importUsers(rows []map[string]interface{}) (int, error) {
	for _, row := range rows {
		user := models.UserModel{
			Name:     docString(row, "name"),
			Username: docString(row, "username"),
			Email:    docString(row, "email"),
			Password: docString(row, "password"), // legacy store holds bcrypt hashes already
			Avatar:   docString(row, "avatar"),
			Bio:      docString(row, "bio"),
			Location: docString(row, "location"),
			Website:  docString(row, "website"),
		}
		user.ID = docID(row)
		user.CreatedAt = docTime(row, "createdAt")
		user.UpdatedAt = docTime(row, "updatedAt")
		if err := i.db.Create(&user).Error; err != nil {
			if database.IsDuplicateKeyError(err) {
				i.logger.Warn("skipping duplicate user", zap.String("id", user.ID))
				continue
			}
			return 0, err
		}
	}
	return len(rows), nil
}

func (i importer) importCategories(rows []map[string]interface{}) (int, error) {
	for _, row := range rows {
		category := models.CategoryModel{
			OwnerID: docRef(row, "user"),
			Name:    docString(row, "name"),
		}
		category.ID = docID(row)
		category.CreatedAt = docTime(row, "createdAt")
		category.UpdatedAt = docTime(row, "updatedAt")
		if err := i.db.Create(&category).Error; err != nil {
			return 0, err
		}
	}
	return len(rows), nil
}

func (i importer) importTags(rows []map[string]interface{}) (int, error) {
	for _, row := range rows {
		tag := models.TagModel{
			OwnerID: docRef(row, "user"),
			Name:    docString(row, "name"),
		}
		tag.ID = docID(row)
		tag.CreatedAt = docTime(row, "createdAt")
		tag.UpdatedAt = docTime(row, "updatedAt")
		if err := i.db.Create(&tag).Error; err != nil {
			return 0, err
		}
	}
	return len(rows), nil
}

func (i importer) importNotes(rows []map[string]interface{}) (int, error) {
	for _, row := range rows {
		note := models.NoteModel{
			OwnerID: docRef(row, "user"),
			Title:   docString(row, "title"),
			Content: docString(row, "content"),
			TagIDs:  docRefList(row, "tags"),
			IsDraft: docBool(row, "isDraft"),
		}
		note.ID = docID(row)
		note.CreatedAt = docTime(row, "createdAt")
		note.UpdatedAt = docTime(row, "updatedAt")
		if ref := docRef(row, "category"); ref != "" {
			note.CategoryID = &ref
		}

		err := i.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&note).Error; err != nil {
				return err
			}
			history, _ := row["history"].(primitive.A)
			for idx, raw := range history {
				entryDoc, ok := asDoc(raw)
				if !ok {
					continue
				}
				entry := models.NoteHistoryModel{
					NoteID:  note.ID,
					Version: idx + 1,
					Content: docString(entryDoc, "content"),
				}
				entry.ID = docID(entryDoc)
				entry.CreatedAt = docTime(entryDoc, "updatedAt")
				entry.UpdatedAt = entry.CreatedAt
				if err := tx.Create(&entry).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return 0, fmt.Errorf("note %s: %w", note.ID, err)
		}
	}
	return len(rows), nil
}

// readCollection decodes a mongodump .bson file: a raw concatenation of
// length-prefixed BSON documents.
func readCollection(path string) ([]map[string]interface{}, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	rows := make([]map[string]interface{}, 0)
	cursor := 0
	for cursor < len(payload) {
		if cursor+4 > len(payload) {
			return nil, fmt.Errorf("invalid bson payload")
		}
		docLen := int(int32(binary.LittleEndian.Uint32(payload[cursor : cursor+4])))
		if docLen <= 0 || cursor+docLen > len(payload) {
			return nil, fmt.Errorf("invalid bson document length")
		}
		var row map[string]interface{}
		if err := bson.Unmarshal(payload[cursor:cursor+docLen], &row); err != nil {
			return nil, err
		}
		rows = append(rows, row)
		cursor += docLen
	}
	return rows, nil
}

func asDoc(value interface{}) (map[string]interface{}, bool) {
	switch v := value.(type) {
	case map[string]interface{}:
		return v, true
	case primitive.M:
		return v, true
	case primitive.D:
		out := make(map[string]interface{}, len(v))
		for _, item := range v {
			out[item.Key] = item.Value
		}
		return out, true
	default:
		return nil, false
	}
}

func docID(row map[string]interface{}) string {
	return docRef(row, "_id")
}

// docRef renders an ObjectID (or legacy string id) field as a string id.
func docRef(row map[string]interface{}, key string) string {
	switch v := row[key].(type) {
	case primitive.ObjectID:
		return v.Hex()
	case string:
		return v
	default:
		return ""
	}
}

func docRefList(row map[string]interface{}, key string) []string {
	arr, ok := row[key].(primitive.A)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		switch v := item.(type) {
		case primitive.ObjectID:
			out = append(out, v.Hex())
		case string:
			out = append(out, v)
		}
	}
	return out
}

func docString(row map[string]interface{}, key string) string {
	s, _ := row[key].(string)
	return s
}

func docBool(row map[string]interface{}, key string) bool {
	b, _ := row[key].(bool)
	return b
}

func docTime(row map[string]interface{}, key string) time.Time {
	switch v := row[key].(type) {
	case primitive.DateTime:
		return v.Time()
	case time.Time:
		return v
	default:
		return time.Now()
	}
}
