package help

type PageData struct {
	IsAdmin    bool
	IsReceiver bool
}
