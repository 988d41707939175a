package gateway

// Upstream path segments.
const (
	PathRawBlock       = "rawblock"
	PathRawTx          = "rawtx"
	PathBlockHeight    = "block-height"
	PathRawAddr        = "rawaddr"
	PathMultiAddr      = "multiaddr"
	PathUnspent        = "unspent"
	PathLatestBlock    = "latestblock"
	PathUnconfirmedTxs = "unconfirmed-transactions"
	PathCharts         = "charts"
	PathStats          = "stats"
	PathTicker         = "ticker"
	PathToBTC          = "tobtc"
	PathQuery          = "q"
)

// Query parameter names and values.
const (
	ParamFormat = "format"
	ParamActive = "active"
	ParamLimit  = "limit"
	ParamOffset = "offset"

	ParamConfirmations  = "confirmations"
	ParamTimespan       = "timespan"
	ParamRollingAverage = "rollingAverage"
	ParamCurrency       = "currency"
	ParamValue          = "value"

	FormatJSON = "json"

	// ActiveSeparator joins addresses in the active parameter.
	ActiveSeparator = "|"
)
