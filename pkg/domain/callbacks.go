package domain

const (
	SelectFormatCallbackPrefix = "format:"
	ConfirmDownloadCallback    = "download:confirm"
	CancelCallback             = "download:cancel"
)
