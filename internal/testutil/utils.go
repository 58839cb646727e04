package testutil

import (
	"log"
	"os"
	"testing"
)

func TestLogger(t *testing.T) *log.Logger {
	t.Helper()
	return log.New(os.Stdout, "["+t.Name()+"] ", log.LstdFlags)
}
