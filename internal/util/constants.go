package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

const (
	MimeVideo       = "video/"
	MimeImage       = "image/"
	MimeOctetStream = "application/octet-stream"
	MimeJPEG        = "image/jpeg"
	MimeMP4         = "video/mp4"
)

var (
	AllowedVideoExtensions = []string{".mp4", ".mov", ".avi", ".mkv", ".wmv", ".flv", ".webm"}
)

func IsAllowedVideoExt(ext string) bool {
	for _, allowed := range AllowedVideoExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// DefaultSessionQuestions is used when neither the request nor a template
// specifies a question count.
const DefaultSessionQuestions = 10

const (
	MinLawNumber = 1
	MaxLawNumber = 17
)

// LawNames indexes the 17 Laws of the Game by law number.
var LawNames = map[int]string{
	1:  "The Field of Play",
	2:  "The Ball",
	3:  "The Players",
	4:  "The Players' Equipment",
	5:  "The Referee",
	6:  "The Other Match Officials",
	7:  "The Duration of the Match",
	8:  "The Start and Restart of Play",
	9:  "The Ball in and Out of Play",
	10: "Determining the Outcome of a Match",
	11: "Offside",
	12: "Fouls and Misconduct",
	13: "Free Kicks",
	14: "The Penalty Kick",
	15: "The Throw-in",
	16: "The Goal Kick",
	17: "The Corner Kick",
}

// ValidLawNumbers keeps only integers within the 1..17 law range.
func ValidLawNumbers(nums []int) []int {
	out := make([]int, 0, len(nums))
	for _, n := range nums {
		if n >= MinLawNumber && n <= MaxLawNumber {
			out = append(out, n)
		}
	}
	return out
}
