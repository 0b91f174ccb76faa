package retcode

const (
	SUCCESS              = 1
	INVALID              = -1
	DB_SAVE_ERROR        = -2
	DB_READ_ERROR        = -3
	CACHE_SAVE_ERROR     = -4
	CACHE_READ_ERROR     = -5
	LOGIN_ERROR          = -7
	NOT_EXISTS           = -8
	JSON_PARSE_FAIL      = -9
	EMPTY_PARAMS         = -12
	DATA_EXISTS          = -13
	AUTH_ERROR           = -14
	RECORD_NOT_FOUND     = -19
	DELETE_FAILED        = -20
	ADD_FAILED           = -21
	UPDATE_FAILED        = -22
	PARAM_INVALID        = -995
	ACCESS_TOKEN_TIMEOUT = -996
	UNKNOWN              = -998
	EXCEPTION            = -999
)

type CodeInfo struct {
	Code    int
	Message string
}

func All() map[string]CodeInfo {
	return map[string]CodeInfo{
		"SUCCESS":              {SUCCESS, "ok"},
		"INVALID":              {INVALID, "invalid operation"},
		"DB_SAVE_ERROR":        {DB_SAVE_ERROR, "storage write failed"},
		"DB_READ_ERROR":        {DB_READ_ERROR, "storage read failed"},
		"CACHE_SAVE_ERROR":     {CACHE_SAVE_ERROR, "cache write failed"},
		"CACHE_READ_ERROR":     {CACHE_READ_ERROR, "cache read failed"},
		"LOGIN_ERROR":          {LOGIN_ERROR, "login failed"},
		"NOT_EXISTS":           {NOT_EXISTS, "not found"},
		"JSON_PARSE_FAIL":      {JSON_PARSE_FAIL, "malformed JSON body"},
		"EMPTY_PARAMS":         {EMPTY_PARAMS, "missing required params"},
		"DATA_EXISTS":          {DATA_EXISTS, "record already exists"},
		"AUTH_ERROR":           {AUTH_ERROR, "authentication failed"},
		"RECORD_NOT_FOUND":     {RECORD_NOT_FOUND, "record not found"},
		"DELETE_FAILED":        {DELETE_FAILED, "delete failed"},
		"ADD_FAILED":           {ADD_FAILED, "create failed"},
		"UPDATE_FAILED":        {UPDATE_FAILED, "update failed"},
		"PARAM_INVALID":        {PARAM_INVALID, "invalid param type"},
		"ACCESS_TOKEN_TIMEOUT": {ACCESS_TOKEN_TIMEOUT, "access token expired"},
		"UNKNOWN":              {UNKNOWN, "unknown error"},
		"EXCEPTION":            {EXCEPTION, "internal error"},
	}
}
