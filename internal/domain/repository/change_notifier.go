package repository

// ChangeNotifier is told which tables a committed write touched.
// An empty table list means the affected tables are unknown.
type ChangeNotifier interface {
	Notify(tables ...string)
}
