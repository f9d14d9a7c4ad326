package services

// ChangeNotifier is told about every write that changes what the admin
// dashboard shows.
type ChangeNotifier interface {
	GrievancesChanged(reason string, grievanceIDs ...uint)
}

type nopNotifier struct{}

func (nopNotifier) GrievancesChanged(string, ...uint) {}

func notifierOrNop(n ChangeNotifier) ChangeNotifier {
	if n == nil {
		return nopNotifier{}
	}
	return n
}
