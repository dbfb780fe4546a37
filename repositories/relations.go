package repositories

import (
	"fmt"

	"gorm.io/gorm"
)

// Relation describes a many-to-many association that is replaced as a whole on write
type Relation struct {
	// Field is the input key carrying the target ids, e.g. "categories_id".
	Field string
	// Association is the gorm association name used for preloading, e.g. "Categories".
	Association string
	// Nested lists deeper associations loaded along with it, e.g. "Genres.Categories".
	Nested      []string
	JoinTable   string
	OwnerKey    string
	TargetKey   string
	TargetTable string
}

// RelationIDs holds the target ids supplied per relation field.
// A missing key leaves that relation untouched; an empty slice clears it.
type RelationIDs map[string][]string

// SyncRelation makes ids the complete association set of owner for rel.
// Targets are checked including soft-deleted rows. tx must be a transaction.
func SyncRelation(tx *gorm.DB, rel Relation, ownerID string, ids []string) error {
	wanted := unique(ids)

	if len(wanted) > 0 {
		var found []string
		if err := tx.Table(rel.TargetTable).Where("id IN ?", wanted).Pluck("id", &found).Error; err != nil {
			return fmt.Errorf("check %s targets: %w", rel.Field, err)
		}
		if missing := difference(wanted, found); len(missing) > 0 {
			return &IntegrityError{Field: rel.Field, Missing: missing}
		}
	}

	var current []string
	if err := tx.Table(rel.JoinTable).Where(rel.OwnerKey+" = ?", ownerID).Pluck(rel.TargetKey, &current).Error; err != nil {
		return fmt.Errorf("load %s: %w", rel.JoinTable, err)
	}

	if removed := difference(current, wanted); len(removed) > 0 {
		err := tx.Exec(
			"DELETE FROM "+rel.JoinTable+" WHERE "+rel.OwnerKey+" = ? AND "+rel.TargetKey+" IN ?",
			ownerID, removed,
		).Error
		if err != nil {
			return fmt.Errorf("detach %s: %w", rel.Field, err)
		}
	}

	for _, id := range difference(wanted, current) {
		err := tx.Exec(
			"INSERT INTO "+rel.JoinTable+" ("+rel.OwnerKey+", "+rel.TargetKey+") VALUES (?, ?)",
			ownerID, id,
		).Error
		if err != nil {
			return fmt.Errorf("attach %s: %w", rel.Field, err)
		}
	}
	return nil
}

// RelatedIDs returns the current association set of owner for rel, trashed targets included.
// Read paths go through preloads; this is the raw join-table view.
func RelatedIDs(db *gorm.DB, rel Relation, ownerID string) ([]string, error) {
	var ids []string
	err := db.Table(rel.JoinTable).Where(rel.OwnerKey+" = ?", ownerID).Order(rel.TargetKey).Pluck(rel.TargetKey, &ids).Error
	return ids, err
}

func unique(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}

// difference returns the items of a that are not in b, keeping a's order
func difference(a, b []string) []string {
	set := make(map[string]struct{}, len(b))
	for _, item := range b {
		set[item] = struct{}{}
	}
	result := make([]string, 0)
	for _, item := range a {
		if _, ok := set[item]; !ok {
			result = append(result, item)
		}
	}
	return result
}

// Predefined relations of the catalog
var (
	GenreCategories = Relation{
		Field:       "categories_id",
		Association: "Categories",
		JoinTable:   "category_genre",
		OwnerKey:    "genre_id",
		TargetKey:   "category_id",
		TargetTable: "categories",
	}
	VideoCategories = Relation{
		Field:       "categories_id",
		Association: "Categories",
		JoinTable:   "category_video",
		OwnerKey:    "video_id",
		TargetKey:   "category_id",
		TargetTable: "categories",
	}
	VideoGenres = Relation{
		Field:       "genres_id",
		Association: "Genres",
		JoinTable:   "genre_video",
		OwnerKey:    "video_id",
		TargetKey:   "genre_id",
		TargetTable: "genres",
		Nested:      []string{"Genres.Categories"},
	}
)
