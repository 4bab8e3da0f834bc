package metrics

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
