package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/collabrate/collabrate/core/course"
	"github.com/collabrate/collabrate/core/seed"
)

func (cli *commandLine) printSeedDataHelp() {
	fmt.Println("seeddata generates a reproducible population of users, courses, teams and enrollments.")
	fmt.Println()
	fmt.Println("Levels (courses / students per course / team size):")
	levels := make([]int, 0, len(seed.Levels))
	for lvl := range seed.Levels {
		levels = append(levels, lvl)
	}
	sort.Ints(levels)
	for _, lvl := range levels {
		l := seed.Levels[lvl]
		fmt.Printf("  %d: %d courses, %d-%d students, teams of %d-%d\n",
			lvl, l.Courses, l.StudentsMin, l.StudentsMax, l.TeamMin, l.TeamMax)
	}
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  -level N          volume level from the table above (default 1)")
	fmt.Println("  -semester NAME    Spring or Fall (default Fall)")
	fmt.Println("  -year INT         course year (default: current year)")
	fmt.Println("  -seed INT         random generator seed; the same seed reproduces the same population")
	fmt.Println("  -with-allauth     also create verified email and social account rows; fails if no identity store is configured")
	fmt.Println("  -fast-passwords   skip password hashing; generated users get unusable passwords")
	fmt.Println("  -purge            delete all existing data first")
}

func (cli *commandLine) seedData(args []string) error {
	seedDataCmd := flag.NewFlagSet("seeddata", flag.ExitOnError)
	level := seedDataCmd.Int("level", 1, "Data volume level: 1, 2 or 3.")
	semester := seedDataCmd.String("semester", course.SemesterFall, "Semester to create courses in: Spring or Fall.")
	year := seedDataCmd.Int("year", time.Now().Year(), "Year to create courses in.")
	rngSeed := seedDataCmd.Int64("seed", time.Now().UnixNano(), "Seed for the random generator; fixed seeds reproduce the same volumes.")
	withAllauth := seedDataCmd.Bool("with-allauth", false, "Also create verified email and social account rows.")
	fastPasswords := seedDataCmd.Bool("fast-passwords", false, "Skip password hashing; generated users get unusable passwords.")
	purge := seedDataCmd.Bool("purge", false, "Delete all existing data before seeding.")
	helpDetailed := seedDataCmd.Bool("help-detailed", false, "Print the volume levels and flag semantics, then exit.")

	if err := seedDataCmd.Parse(args); err != nil {
		return err
	}
	if *helpDetailed {
		cli.printSeedDataHelp()
		return errHelp
	}

	seeder := seed.NewSeeder(cli.store, cli.usrRepo, cli.crsRepo, cli.teamRepo, cli.idRepo, os.Stdout)
	stats, err := seeder.Run(context.Background(), seed.Options{
		Level:         *level,
		Semester:      *semester,
		Year:          *year,
		Seed:          *rngSeed,
		WithIdentity:  *withAllauth,
		FastPasswords: *fastPasswords,
		Purge:         *purge,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Done: %d courses, %d professors, %d students, %d teams\n",
		stats.Courses, stats.Professors, stats.Students, stats.Teams)
	return nil
}
