package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"shopledger/internal/core/entity"
	"shopledger/internal/core/id"
)

type testEntity struct {
	entity.Catalog

	Barcode  string `db:"barcode"`
	Ignored  string `db:"-"`
	Untagged string
	IsActive bool `db:"is_active"`
}

func TestExtractDBColumns_IncludesEmbedded(t *testing.T) {
	cols := ExtractDBColumns[testEntity]()

	assert.Contains(t, cols, "id")
	assert.Contains(t, cols, "code")
	assert.Contains(t, cols, "name")
	assert.Contains(t, cols, "deletion_mark")
	assert.Contains(t, cols, "barcode")
	assert.Contains(t, cols, "is_active")
	assert.NotContains(t, cols, "-")
	assert.NotContains(t, cols, "Untagged")
}

func TestExtractDBColumns_PointerType(t *testing.T) {
	direct := ExtractDBColumns[testEntity]()
	viaPtr := ExtractDBColumns[*testEntity]()
	assert.Equal(t, direct, viaPtr)
}

func TestStructToMap(t *testing.T) {
	e := testEntity{
		Catalog:  entity.NewCatalog("X-001", "Test Entity"),
		Barcode:  "4006381333931",
		Ignored:  "hidden",
		Untagged: "hidden",
		IsActive: true,
	}

	m := StructToMap(&e)

	assert.Equal(t, "X-001", m["code"])
	assert.Equal(t, "Test Entity", m["name"])
	assert.Equal(t, "4006381333931", m["barcode"])
	assert.Equal(t, true, m["is_active"])
	assert.Equal(t, false, m["deletion_mark"])
	_, hasIgnored := m["-"]
	assert.False(t, hasIgnored)

	gotID, ok := m["id"].(id.ID)
	assert.True(t, ok)
	assert.Equal(t, e.ID, gotID)
}

func TestStructToMap_NonStruct(t *testing.T) {
	assert.Nil(t, StructToMap(42))
	assert.Nil(t, StructToMap("nope"))
}
