package config

const (
	// Catalog columns, matched after header trimming.
	ColumnName         = "업소명"
	ColumnCategoryCode = "분류코드"
	ColumnCategory     = "분류코드명"
	ColumnAddress      = "업소 주소"
	ColumnPhone        = "업소 전화번호"
	ColumnPride        = "자랑거리"

	// Derived values
	DistrictOther    = "기타"
	DistrictAll      = "전체"
	PhonePlaceholder = "-"
	PhoneRegion      = "KR"

	// Report log
	TimestampLayout = "2006-01-02 15:04"
	DateLayout      = "2006-01-02"
	DefaultNickname = "시민1"
	MaxBodyLength   = 2000
)

// SeoulDistricts is the fixed scan order used for district derivation.
var SeoulDistricts = []string{
	"강남구", "강동구", "강북구", "강서구", "관악구", "광진구", "구로구", "금천구",
	"노원구", "도봉구", "동대문구", "동작구", "마포구", "서대문구", "서초구", "성동구",
	"성북구", "송파구", "양천구", "영등포구", "용산구", "은평구", "종로구", "중구", "중랑구",
}

// ReportColumns is the header of the report log file, in order.
var ReportColumns = []string{"업소명", "닉네임", "유형", "내용", "날짜"}

// ReportKinds are the kinds offered by the submission forms.
var ReportKinds = []string{"자랑거리", "찾아오는 길", "메뉴 추천", "기타"}
