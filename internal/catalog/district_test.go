package catalog_test

import (
	"testing"

	"fairprice/backend/internal/catalog"
	"fairprice/backend/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestDistrictByList(t *testing.T) {
	tests := []struct {
		address string
		want    string
	}{
		{"서울특별시 강남구 테헤란로 152", "강남구"},
		{"서울 중구 명동길 14", "중구"},
		{"서울특별시 중랑구 망우로 200", "중랑구"},
		{"서울특별시 동대문구 왕산로 1", "동대문구"},
		{"서울특별시 서대문구 연희로 2", "서대문구"},
		// list order wins over position in the address
		{"서울 중구 강남구청 옆", "강남구"},
		{"경기도 성남시 분당구", config.DistrictOther},
		{"", config.DistrictOther},
		{"   ", config.DistrictOther},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, catalog.DistrictByList(tt.address), tt.address)
	}
}

func TestDistrictByToken(t *testing.T) {
	assert.Equal(t, "강남구", catalog.DistrictByToken("서울특별시 강남구 테헤란로"))
	assert.Equal(t, config.DistrictOther, catalog.DistrictByToken("서울특별시강남구"))
	assert.Equal(t, config.DistrictOther, catalog.DistrictByToken("경기도 성남시 분당구"))
	assert.Equal(t, config.DistrictOther, catalog.DistrictByToken(""))
}

func TestDistrictResolver(t *testing.T) {
	addr := "서울 중구 강남구청 옆"

	assert.Equal(t, "강남구", catalog.DistrictResolver(config.DistrictStrategyList)(addr))
	assert.Equal(t, "중구", catalog.DistrictResolver(config.DistrictStrategyToken)(addr))
	assert.Equal(t, "강남구", catalog.DistrictResolver("bogus")(addr))
}

func TestDialablePhone(t *testing.T) {
	e164, ok := catalog.DialablePhone("02-2133-1234")
	assert.True(t, ok)
	assert.Equal(t, "+82221331234", e164)

	_, ok = catalog.DialablePhone(config.PhonePlaceholder)
	assert.False(t, ok)

	_, ok = catalog.DialablePhone("없음")
	assert.False(t, ok)
}
