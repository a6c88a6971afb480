// Command run sweeps two-step drive protocols on ring lattices and
// records the resulting independent-set observables.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"rydberg"
)

const (
	tableResults = "results"
)

var (
	dbPath = flag.String("db", "runs/rydberg.db", "result database path")
	maxN   = flag.Int("n", 8, "maximum ring size")
)

type result struct {
	n   int
	phi float64
	t1  float64
	t2  float64

	rydberg.Statistics
}

func solve(db *sql.DB, r result) error {
	done, err := solved(db, r)
	if err != nil {
		return errors.Wrap(err, "")
	}
	if done {
		return nil
	}

	g := rydberg.Ring(r.n)
	s := rydberg.BlockadeSubspace(g)

	// Start from the vacuum, the lowest numbered configuration.
	state := make([]complex64, len(s))
	state[0] = 1

	hs := []rydberg.Hamiltonian{
		rydberg.DriveHamiltonian{},
		rydberg.DriveHamiltonian{Phase: r.phi},
	}
	ts := []float64{r.t1, r.t2}
	if _, err := rydberg.EvaluateQAOA(state, hs, r.n, s, ts); err != nil {
		return errors.Wrap(err, "")
	}

	stats, err := rydberg.GetStatistics(r.n, s, state)
	if err != nil {
		return errors.Wrap(err, "")
	}
	r.Statistics = stats

	if err := insert(db, r); err != nil {
		return errors.Wrap(err, "")
	}
	return nil
}

func solved(db *sql.DB, r result) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	sqlStr := fmt.Sprintf(`SELECT count(1) FROM %s WHERE n=? AND phi=? AND t1=? AND t2=?`, tableResults)
	var count int
	if err := db.QueryRowContext(ctx, sqlStr, r.n, r.phi, r.t1, r.t2).Scan(&count); err != nil {
		return false, errors.Wrap(err, "")
	}
	return count > 0, nil
}

func insert(db *sql.DB, r result) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	sqlStr := fmt.Sprintf(`INSERT OR REPLACE INTO %s (n, phi, t1, t2, size, best, bestp) VALUES (?, ?, ?, ?, ?, ?, ?)`, tableResults)
	args := []any{r.n, r.phi, r.t1, r.t2, r.MeanSize, int64(r.Best), r.BestProb}
	if _, err := db.ExecContext(ctx, sqlStr, args...); err != nil {
		return errors.Wrap(err, fmt.Sprintf("%#v", args))
	}
	return nil
}

func gather(db *sql.DB) ([]result, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	sqlStr := fmt.Sprintf(`SELECT n, phi, t1, t2, size, best, bestp FROM %s ORDER BY n, phi, t1, t2`, tableResults)
	rows, err := db.QueryContext(ctx, sqlStr)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	defer rows.Close()

	results := make([]result, 0)
	for rows.Next() {
		var r result
		var best int64
		if err := rows.Scan(&r.n, &r.phi, &r.t1, &r.t2, &r.MeanSize, &best, &r.BestProb); err != nil {
			return nil, errors.Wrap(err, "")
		}
		r.Best = rydberg.Config(best)
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "")
	}
	return results, nil
}

func newDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s", path))
	if err != nil {
		return nil, errors.Wrap(err, "")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	sqlStr := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (n INTEGER, phi REAL, t1 REAL, t2 REAL, size REAL, best INTEGER, bestp REAL, PRIMARY KEY (n, phi, t1, t2)) STRICT`, tableResults)
	if _, err := db.ExecContext(ctx, sqlStr); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "")
	}

	return db, nil
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds | log.Llongfile | log.LstdFlags)

	if err := mainWithErr(); err != nil {
		log.Fatalf("%+v", err)
	}
}

func mainWithErr() error {
	if err := os.MkdirAll(filepath.Dir(*dbPath), os.ModePerm); err != nil {
		return errors.Wrap(err, "")
	}
	db, err := newDB(*dbPath)
	if err != nil {
		return errors.Wrap(err, "")
	}
	defer db.Close()

	configs := make([]result, 0)
	for n := 4; n <= *maxN; n++ {
		for _, phi := range []float64{0, math.Pi / 4, math.Pi / 2} {
			for _, t1 := range []float64{0.25, 0.5, 1} {
				for _, t2 := range []float64{0.25, 0.5, 1} {
					configs = append(configs, result{n: n, phi: phi, t1: t1, t2: t2})
				}
			}
		}
	}

	for _, c := range configs {
		if err := solve(db, c); err != nil {
			return errors.Wrap(err, fmt.Sprintf("%d %f %f %f", c.n, c.phi, c.t1, c.t2))
		}
		log.Printf("%d %f %f %f", c.n, c.phi, c.t1, c.t2)
	}

	results, err := gather(db)
	if err != nil {
		return errors.Wrap(err, "")
	}
	fmt.Printf("n,phi,t1,t2,size,best,bestp\n")
	for _, r := range results {
		fmt.Printf("%d,%f,%f,%f,%f,%d,%f\n", r.n, r.phi, r.t1, r.t2, r.MeanSize, r.Best, r.BestProb)
	}
	return nil
}
