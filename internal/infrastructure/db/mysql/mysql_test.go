package mysql

import (
	"strings"
	"testing"
)

func TestDSN_ReportsMatchedRows(t *testing.T) {
	d := dsn(Config{User: "fleet", Password: "pw", Host: "localhost", Port: "3306", Database: "fleet"})

	if d != "fleet:pw@tcp(localhost:3306)/fleet?charset=utf8mb4&parseTime=true&loc=UTC&clientFoundRows=true" {
		t.Fatalf("unexpected dsn: %s", d)
	}

	// Without clientFoundRows an idempotent UPDATE reports zero affected
	// rows and a not-found check would reject an existing row.
	if !strings.Contains(d, "clientFoundRows=true") {
		t.Fatalf("dsn must enable clientFoundRows: %s", d)
	}
}

func TestDSN_OmitsEmptyPassword(t *testing.T) {
	d := dsn(Config{User: "fleet", Host: "db", Port: "3306", Database: "fleet"})

	if strings.Contains(d, ":@") {
		t.Fatalf("empty password must not produce a colon: %s", d)
	}
	if !strings.HasPrefix(d, "fleet@tcp(db:3306)/fleet?") {
		t.Fatalf("unexpected dsn: %s", d)
	}
}
