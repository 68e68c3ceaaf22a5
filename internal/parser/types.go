package parser

// SheetType 分页类型
type SheetType string

const (
	SheetTypeBranch      SheetType = "branch"      // 分店日报
	SheetTypeLeaderboard SheetType = "leaderboard" // 业绩排行
	SheetTypeUnknown     SheetType = "unknown"
)

// SheetRecognitionResult 分页识别结果
type SheetRecognitionResult struct {
	SheetName  string    `json:"sheetName"`
	SheetType  SheetType `json:"sheetType"`
	Confidence float64   `json:"confidence"` // 置信度 0-1
	DataYear   int       `json:"dataYear"`   // 识别出的数据年份
	DataMonth  int       `json:"dataMonth"`  // 识别出的数据月份
}
