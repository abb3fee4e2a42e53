//go:build amd64
// +build amd64

package protocol

import (
	"testing"
	"time"

	"bou.ke/monkey"
)

func TestDateHeaderFormat(t *testing.T) {
	patch := monkey.Patch(time.Now, func() time.Time {
		return time.Date(2009, time.November, 10, 23, 0, 0, 0, time.UTC)
	})
	defer patch.Unpatch()

	r := NewResponse()
	r.SetBody([]byte("hello"))
	if err := r.AddDefaultHeaders("test"); err != nil {
		t.Fatal(err)
	}
	date, _ := r.Header("Date")
	if date != "Tue, 10 Nov 2009 23:00:00 GMT" {
		t.Fatalf("Date: got %q", date)
	}
}
