package obs

import (
	"bytes"
	"context"
	"errors"
	"log"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureLogger(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := Logger
	Logger = log.New(&buf, "", 0)
	t.Cleanup(func() { Logger = prev })
	return &buf
}

func TestTimeLogsSuccess(t *testing.T) {
	buf := captureLogger(t)

	func() (err error) {
		defer Time(WithRequestID(context.Background(), "abc"), "runs.SaveRun")(&err)
		return nil
	}()

	assert.Regexp(t, regexp.MustCompile(`^req_id=abc op=runs.SaveRun status=ok dur=\d+ms\n$`), buf.String())
}

func TestTimeLogsError(t *testing.T) {
	buf := captureLogger(t)

	func() (err error) {
		defer Time(context.Background(), "csv.ReadRows")(&err)
		return errors.New("open data.csv: no such file")
	}()

	assert.Regexp(t,
		regexp.MustCompile(`^op=csv.ReadRows status=error dur=\d+ms err=open data.csv: no such file\n$`),
		buf.String())
}

func TestRequestID(t *testing.T) {
	assert.Equal(t, "", RequestID(context.Background()))
	assert.Equal(t, "r-1", RequestID(WithRequestID(context.Background(), "r-1")))
}
