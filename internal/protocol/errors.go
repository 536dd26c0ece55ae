package protocol

// 错误码
const (
	ErrCodeUnknown       = 1000
	ErrCodeInvalidMsg    = 1001
	ErrCodeMissingClient = 1002 // 缺少 clientId

	ErrCodeRoomNotFound = 2001
	ErrCodeRoomExists   = 2002
	ErrCodeSeatNotFound = 2003
	ErrCodeSeatTaken    = 2004 // 座位已被他人占用
	ErrCodeNotHost      = 2005
	ErrCodeNotAllowed   = 2006 // 既不是房主也不是本人
	ErrCodeNoSeat       = 2007 // 未认领座位

	ErrCodeRoomFull        = 3001
	ErrCodeMinPlayers      = 3002
	ErrCodeHistoryNotEmpty = 3003 // 有战绩时禁止的操作
	ErrCodeHistoryEmpty    = 3004 // 无战绩可撤销
	ErrCodeNoDraftSlot     = 3005 // 当前回合没有录入位
	ErrCodeInvalidBanker   = 3006
)

// ErrorMessages 错误码对应的消息
var ErrorMessages = map[int]string{
	ErrCodeUnknown:         "服务器错误",
	ErrCodeInvalidMsg:      "无效的消息格式",
	ErrCodeMissingClient:   "clientId 缺失",
	ErrCodeRoomNotFound:    "房间不存在。",
	ErrCodeRoomExists:      "房间号已存在，请换一个。",
	ErrCodeSeatNotFound:    "玩家不存在。",
	ErrCodeSeatTaken:       "这个身份已被占用。",
	ErrCodeNotHost:         "只有房主可以执行该操作。",
	ErrCodeNotAllowed:      "只有房主或玩家本人可以修改名称。",
	ErrCodeNoSeat:          "请先认领你的玩家身份。",
	ErrCodeRoomFull:        "最多支持 10 名玩家。",
	ErrCodeMinPlayers:      "至少保留 2 名玩家。",
	ErrCodeHistoryNotEmpty: "已有战绩时不能删人，请先清空战绩。",
	ErrCodeHistoryEmpty:    "没有可撤销的局。",
	ErrCodeNoDraftSlot:     "当前回合未找到你的录入位。",
	ErrCodeInvalidBanker:   "庄家身份无效。",
}
