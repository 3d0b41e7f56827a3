package plaidster

// UserAgent identifies the library on every request.
const UserAgent = "plaidster/1.0 (+https://github.com/dhsu210/Plaidster)"

func GetUserAgent() string {
	return UserAgent
}
