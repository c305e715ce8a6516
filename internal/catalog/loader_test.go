package catalog

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fairprice/backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/korean"
)

const sampleCSV = ` 업소명 ,분류코드,분류코드명, 업소 주소 ,업소 전화번호,자랑거리,찾아오는 길
한솥도시락,100,한식,서울특별시 강남구 테헤란로 1,02-555-1234,가성비 최고,역삼역 3번 출구
가나다분식,100,한식,서울특별시 중구 명동길 2,,떡볶이 맛집,
Zebra Cafe,200,카페,서울특별시 마포구 와우산로 3,02-333-4444,,
123 Mart,300,기타서비스,경기도 성남시 분당구 4,031-111-2222,싸요,
Apple Hair,400,미용업,서울 중랑구 망우로 5,  ,,
`

func writeCatalog(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.csv")
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func TestLoad_NormalizesAndOrders(t *testing.T) {
	path := writeCatalog(t, []byte(sampleCSV))

	list, err := Load(path, nil)
	require.NoError(t, err)
	require.Len(t, list, 5)

	names := make([]string, 0, len(list))
	for _, b := range list {
		names = append(names, b.Name)
	}
	assert.Equal(t, []string{"가나다분식", "한솥도시락", "123 Mart", "Apple Hair", "Zebra Cafe"}, names)

	byName := map[string]int{}
	for i, b := range list {
		byName[b.Name] = i
	}
	assert.Equal(t, "강남구", list[byName["한솥도시락"]].District)
	assert.Equal(t, "중구", list[byName["가나다분식"]].District)
	assert.Equal(t, "마포구", list[byName["Zebra Cafe"]].District)
	assert.Equal(t, config.DistrictOther, list[byName["123 Mart"]].District)
	assert.Equal(t, "중랑구", list[byName["Apple Hair"]].District)

	assert.Equal(t, config.PhonePlaceholder, list[byName["가나다분식"]].Phone)
	assert.Equal(t, config.PhonePlaceholder, list[byName["Apple Hair"]].Phone)
	assert.Equal(t, "02-555-1234", list[byName["한솥도시락"]].Phone)

	assert.Equal(t, "100", list[byName["한솥도시락"]].CategoryCode)
	assert.Equal(t, "역삼역 3번 출구", list[byName["한솥도시락"]].Extra["찾아오는 길"])
}

func TestLoad_EveryDistrictIsKnown(t *testing.T) {
	path := writeCatalog(t, []byte(sampleCSV))

	list, err := Load(path, nil)
	require.NoError(t, err)

	for _, b := range list {
		assert.NotEmpty(t, b.District)
		assert.True(t, IsDistrict(b.District), "unexpected district %q", b.District)
		assert.NotEqual(t, b.Address, b.District)
	}
}

func TestLoad_SameFileSameOrder(t *testing.T) {
	path := writeCatalog(t, []byte(sampleCSV))

	first, err := Load(path, nil)
	require.NoError(t, err)
	second, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestLoad_CP949(t *testing.T) {
	encoded, err := korean.EUCKR.NewEncoder().String(sampleCSV)
	require.NoError(t, err)
	path := writeCatalog(t, []byte(encoded))

	list, err := Load(path, nil)
	require.NoError(t, err)
	require.Len(t, list, 5)
	assert.Equal(t, "가나다분식", list[0].Name)
	assert.Equal(t, "중구", list[0].District)
}

func TestDecodeText_FallsBackToUTF8(t *testing.T) {
	out, enc, err := decodeText([]byte(sampleCSV))
	require.NoError(t, err)
	assert.Equal(t, encodingUTF8, enc)
	assert.Equal(t, sampleCSV, string(out))

	encoded, err := korean.EUCKR.NewEncoder().String("업소명")
	require.NoError(t, err)
	out, enc, err = decodeText([]byte(encoded))
	require.NoError(t, err)
	assert.Equal(t, encodingCP949, enc)
	assert.Equal(t, "업소명", string(out))
}

func TestDecodeText_BOM(t *testing.T) {
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("업소명")...)

	out, enc, err := decodeText(raw)
	require.NoError(t, err)
	assert.Equal(t, encodingUTF8, enc)
	assert.Equal(t, "업소명", string(out))
}

func TestDecodeText_Undecodable(t *testing.T) {
	_, _, err := decodeText([]byte{0xEC, 0x97, 0xFF, 0xFF})
	assert.ErrorIs(t, err, ErrUndecodable)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"), nil)

	assert.ErrorIs(t, err, ErrCatalogNotFound)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoad_MissingColumn(t *testing.T) {
	path := writeCatalog(t, []byte("업소명,업소 주소\n가게,서울 강남구\n"))

	_, err := Load(path, nil)
	assert.ErrorIs(t, err, ErrMissingColumn)

	path = writeCatalog(t, nil)
	_, err = Load(path, nil)
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestLoad_ShortRowsAndTokenStrategy(t *testing.T) {
	content := "업소명,분류코드명,업소 주소\n가게,한식,서울특별시 강남구 역삼동\n나게,한식\n"
	path := writeCatalog(t, []byte(content))

	list, err := Load(path, DistrictByToken)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "강남구", list[0].District)
	assert.Equal(t, config.DistrictOther, list[1].District)
	assert.Equal(t, config.PhonePlaceholder, list[1].Phone)
}

func TestCache_ReloadsOnChange(t *testing.T) {
	path := writeCatalog(t, []byte(sampleCSV))
	c := NewCache(path, nil)

	first, err := c.Get()
	require.NoError(t, err)
	again, err := c.Get()
	require.NoError(t, err)
	assert.Equal(t, first, again)

	updated := strings.Replace(sampleCSV, "Zebra Cafe", "Yak Cafe", 1)
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o644))
	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, later, later))

	reloaded, err := c.Get()
	require.NoError(t, err)
	assert.Equal(t, "Yak Cafe", reloaded[len(reloaded)-1].Name)
}

func TestCache_InvalidateForcesReload(t *testing.T) {
	path := writeCatalog(t, []byte(strings.Replace(sampleCSV, "Zebra Cafe", "Yak Cafe", 1)))
	stamp := time.Now().Add(-time.Hour).Truncate(time.Second)
	require.NoError(t, os.Chtimes(path, stamp, stamp))
	c := NewCache(path, nil)

	list, err := c.Get()
	require.NoError(t, err)
	require.Equal(t, "Yak Cafe", list[len(list)-1].Name)

	// Same size and modification time: only Invalidate can reveal the edit.
	require.NoError(t, os.WriteFile(path, []byte(strings.Replace(sampleCSV, "Zebra Cafe", "Emu Cafe", 1)), 0o644))
	require.NoError(t, os.Chtimes(path, stamp, stamp))

	cached, err := c.Get()
	require.NoError(t, err)
	assert.Equal(t, "Yak Cafe", cached[len(cached)-1].Name)

	c.Invalidate()
	reloaded, err := c.Get()
	require.NoError(t, err)
	assert.Equal(t, "Emu Cafe", reloaded[len(reloaded)-1].Name)
}

func TestCache_MissingFile(t *testing.T) {
	c := NewCache(filepath.Join(t.TempDir(), "missing.csv"), nil)

	_, err := c.Get()
	assert.ErrorIs(t, err, ErrCatalogNotFound)
}
