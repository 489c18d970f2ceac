package mysql

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jvportella/dataset-financial-transactions/internal/storage"
)

func TestDialect_InsertIgnore(t *testing.T) {
	spec := storage.TableSpec{Name: "merchants", Columns: []string{"id", "merchant_city", "zip"}, ConflictKey: "id"}
	want := "INSERT INTO `merchants` (`id`, `merchant_city`, `zip`) VALUES (?, ?, ?) ON DUPLICATE KEY UPDATE `id` = `id`"
	assert.Equal(t, want, Dialect{}.InsertIgnore(spec))
}
