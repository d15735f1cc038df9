package apperr

import "strings"

// User-facing messages.
const (
	MsgThrottled            = "リクエストが多すぎます。しばらく待ってから再試行してください"
	MsgRejectedInput        = "入力データが不正です"
	MsgDiagnosticFailed     = "AI分析中にエラーが発生しました。もう一度お試しください"
	MsgParseFailed          = "AI分析結果の解析に失敗しました"
	MsgServiceUnavailable   = "AIサービスが一時的に利用できません。しばらく待ってから再試行してください"
	MsgAccessDenied         = "AIサービスへのアクセスが拒否されました"
	MsgStorageUnavailable   = "保存領域が利用できません"
	MsgStorageQuota         = "保存領域が満杯です。古い結果を削除してください"
	MsgStorageSaveFailed    = "結果の保存に失敗しました"
	MsgStorageReadFailed    = "結果の読み込みに失敗しました"
	MsgStorageDeleteFailed  = "結果の削除に失敗しました"
	MsgNetworkOffline       = "ネットワーク接続を確認してください"
	MsgNetworkTimeout       = "リクエストがタイムアウトしました。もう一度お試しください"
	MsgNetworkFailed        = "ネットワークエラーが発生しました。もう一度お試しください"
	MsgRequired             = "必須項目が入力されていません"
	MsgInvalidMode          = "診断方針が不正です"
	MsgInvalidResponse      = "回答データが不正です"
	MsgNoResponses          = "回答が必要です"
	MsgNoServices           = "サービスリストが必要です"
	MsgGiftCardFailed       = "ギフトカード生成中にエラーが発生しました"
	MsgGiftCardNoData       = "診断結果データが必要です"
	MsgGiftCardInvalidData  = "診断結果データが不正です"
	MsgGiftCardNoImage      = "画像が生成されませんでした"
	MsgImageUnavailable     = "画像生成サービスが一時的に利用できません。しばらく待ってから再試行してください"
	MsgImageAccessDenied    = "画像生成サービスへのアクセスが拒否されました"
	MsgImageContentFiltered = "画像生成リクエストがコンテンツフィルターによりブロックされました"
	MsgResultNotFound       = "診断結果が見つかりませんでした"
	MsgUnknown              = "予期しないエラーが発生しました"
)

func isGiftCardOp(op string) bool {
	return strings.HasPrefix(op, OpGiftCard)
}

// messageFor returns the default message for kind in the context of op.
func messageFor(kind Kind, op string) string {
	image := isGiftCardOp(op)
	switch kind {
	case NetworkUnavailable:
		return MsgNetworkFailed
	case NetworkTimeout:
		return MsgNetworkTimeout
	case ExternalServiceThrottled:
		return MsgThrottled
	case ExternalServiceRejectedInput:
		return MsgRejectedInput
	case ExternalServiceUnavailable:
		if image {
			return MsgImageUnavailable
		}
		return MsgServiceUnavailable
	case ExternalServiceAccessDenied:
		if image {
			return MsgImageAccessDenied
		}
		return MsgAccessDenied
	case ContentFiltered:
		if image {
			return MsgImageContentFiltered
		}
		return MsgDiagnosticFailed
	case ResponseParseFailure:
		return MsgParseFailed
	case StorageUnavailable:
		return MsgStorageUnavailable
	case StorageQuotaExceeded:
		return MsgStorageQuota
	case ValidationFailure:
		return MsgRequired
	}
	switch {
	case image:
		return MsgGiftCardFailed
	case op == OpDiagnose:
		return MsgDiagnosticFailed
	case op == OpArchiveSave:
		return MsgStorageSaveFailed
	case op == OpArchiveRead:
		return MsgStorageReadFailed
	case op == OpArchiveDel:
		return MsgStorageDeleteFailed
	}
	return MsgUnknown
}

// UserMessage returns the localized message for any error.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return Normalize("", err).UserMessage()
}
