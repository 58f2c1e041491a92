package browse

import (
	"testing"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func movie(id, title string) Movie {
	return Movie{ID: id, Title: title, PosterPath: "/" + id + ".jpg"}
}
