package submit

import "errors"

// Notice is the dialog shown to the user after a submission.
type Notice struct {
	Title   string
	Message string
}

func (n Notice) IsZero() bool { return n == Notice{} }

// NoticeFunc picks the failure notice for err.
type NoticeFunc func(err error) Notice

// GenericNotice shows the same notice for every failure.
func GenericNotice(title, msg string) NoticeFunc {
	n := Notice{Title: title, Message: msg}
	return func(error) Notice { return n }
}

// CodeNotices selects a notice by matching err against the keys of byErr
// with errors.Is, falling back to generic.
func CodeNotices(generic Notice, byErr map[error]Notice) NoticeFunc {
	return func(err error) Notice {
		for target, n := range byErr {
			if errors.Is(err, target) {
				return n
			}
		}
		return generic
	}
}
