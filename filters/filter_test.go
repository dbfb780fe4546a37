package filters

import (
	"net/url"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/catalog-admin/database/databasetest"
	"github.com/catalog-admin/models"
	"gorm.io/gorm"
)

func seedCastMembers(t *testing.T, db *gorm.DB) {
	t.Helper()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	members := []models.CastMember{
		{Name: "Ana Director", Type: models.CastMemberTypeDirector},
		{Name: "Bruno Actor", Type: models.CastMemberTypeActor},
		{Name: "Carla Actor", Type: models.CastMemberTypeActor},
	}
	for i := range members {
		members[i].CreatedAt = base.Add(time.Duration(i) * time.Hour)
		if err := db.Create(&members[i]).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
}

func names(t *testing.T, db *gorm.DB, params string) []string {
	t.Helper()
	values, err := url.ParseQuery(params)
	if err != nil {
		t.Fatalf("parse query: %v", err)
	}
	var members []models.CastMember
	if err := CastMemberFilter().Apply(db.Model(&models.CastMember{}), values).Find(&members).Error; err != nil {
		t.Fatalf("query: %v", err)
	}
	out := make([]string, 0, len(members))
	for _, m := range members {
		out = append(out, m.Name)
	}
	return out
}

func TestCastMemberFilter(t *testing.T) {
	db := databasetest.New(t)
	seedCastMembers(t, db)

	tests := []struct {
		name   string
		params string
		want   []string
	}{
		{name: "default order is newest first", params: "", want: []string{"Carla Actor", "Bruno Actor", "Ana Director"}},
		{name: "search", params: "search=actor&sort=name", want: []string{"Bruno Actor", "Carla Actor"}},
		{name: "type", params: "type=1", want: []string{"Ana Director"}},
		{name: "several types", params: "type[]=1&type[]=2&sort=name", want: []string{"Ana Director", "Bruno Actor", "Carla Actor"}},
		{name: "unknown type ignored", params: "type=3&sort=name", want: []string{"Ana Director", "Bruno Actor", "Carla Actor"}},
		{name: "garbage type ignored", params: "type=abc&sort=name", want: []string{"Ana Director", "Bruno Actor", "Carla Actor"}},
		{name: "sort desc", params: "sort=name&dir=desc", want: []string{"Carla Actor", "Bruno Actor", "Ana Director"}},
		{name: "unknown dir is asc", params: "sort=name&dir=sideways", want: []string{"Ana Director", "Bruno Actor", "Carla Actor"}},
		{name: "type and search combine", params: "type=2&search=carla", want: []string{"Carla Actor"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := names(t, db, tt.params); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestUnsortableColumnIsIgnored(t *testing.T) {
	f := CategoryFilter()
	if f.IsSortable("description") || !f.IsSortable("name") {
		t.Fatalf("unexpected sortable whitelist")
	}

	db := databasetest.New(t)
	stmt := db.Session(&gorm.Session{DryRun: true})
	values := url.Values{"sort": {"name; DROP TABLE categories"}}
	sql := f.Apply(stmt.Model(&models.Category{}), values).Find(&[]models.Category{}).Statement.SQL.String()
	if strings.Contains(sql, "ORDER BY") || strings.Contains(sql, "DROP") {
		t.Fatalf("unsortable column leaked into the query: %s", sql)
	}
}

func TestValues(t *testing.T) {
	params, _ := url.ParseQuery("categories=a,b&categories=c&categories[]=d&empty=")
	if got := Values(params, "categories"); !reflect.DeepEqual(got, []string{"a", "b", "c", "d"}) {
		t.Fatalf("unexpected values %v", got)
	}
	if got := Values(params, "empty"); len(got) != 0 {
		t.Fatalf("blank values should be dropped, got %v", got)
	}
}

func TestVideoFilterRelations(t *testing.T) {
	db := databasetest.New(t)

	movies := models.Category{Name: "Movies", IsActive: true}
	docs := models.Category{Name: "Docs", IsActive: true}
	action := models.Genre{Name: "Action", IsActive: true}
	for _, item := range []interface{}{&movies, &docs, &action} {
		if err := db.Create(item).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	first := models.Video{Title: "First", Rating: "L", Categories: []models.Category{movies}, Genres: []models.Genre{action}}
	second := models.Video{Title: "Second", Rating: "L", Categories: []models.Category{docs}}
	for _, v := range []*models.Video{&first, &second} {
		if err := db.Omit("Categories.*", "Genres.*").Create(v).Error; err != nil {
			t.Fatalf("seed video: %v", err)
		}
	}

	find := func(params string) []string {
		values, _ := url.ParseQuery(params)
		var videos []models.Video
		if err := VideoFilter().Apply(db.Model(&models.Video{}), values).Find(&videos).Error; err != nil {
			t.Fatalf("query: %v", err)
		}
		out := []string{}
		for _, v := range videos {
			out = append(out, v.Title)
		}
		return out
	}

	if got := find("categories=Docs"); !reflect.DeepEqual(got, []string{"Second"}) {
		t.Fatalf("category name filter: %v", got)
	}
	if got := find("genres=" + action.ID); !reflect.DeepEqual(got, []string{"First"}) {
		t.Fatalf("genre id filter: %v", got)
	}
	if got := find("categories=Docs&genres=Action"); len(got) != 0 {
		t.Fatalf("handlers are AND-combined, got %v", got)
	}
	if got := find("search=sec"); !reflect.DeepEqual(got, []string{"Second"}) {
		t.Fatalf("title search: %v", got)
	}
}
