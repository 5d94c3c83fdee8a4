package export

// Result is the outcome of an export run in the background.
type Result struct {
	Path string
	Err  error
}

// SaveAsync runs save on its own goroutine. The returned channel receives
// exactly one result and is then closed.
func SaveAsync(save func() (string, error)) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		defer close(out)
		path, err := save()
		out <- Result{Path: path, Err: err}
	}()
	return out
}
