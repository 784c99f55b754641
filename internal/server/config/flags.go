package config

import (
	"flag"
	"os"
	"strings"

	"github.com/dmitrijs2005/taskkeeper/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
//	-a string   HTTP bind address (e.g. ":8080")
//	-s string   storage driver: postgres or sqlite
//	-d string   database DSN
//	-l string   log level
//	-o string   comma-separated CORS origins
//	-w duration graceful shutdown timeout
//	-k string   backup cron schedule, empty disables backups
//	-backup-now export one snapshot and exit
//	-u, -p, -b, -g, -e  S3 user, password, bucket, region, endpoint
//
// Only the flags listed above are picked out of os.Args, so -c can be
// handled elsewhere.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-s", "-d", "-l", "-o", "-w", "-k", "-backup-now", "-u", "-p", "-b", "-g", "-e"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.StorageDriver, "s", config.StorageDriver, "storage driver (postgres|sqlite)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	origins := fs.String("o", strings.Join(config.CORSAllowedOrigins, ","), "comma-separated CORS origins")
	fs.DurationVar(&config.ShutdownTimeout, "w", config.ShutdownTimeout, "graceful shutdown timeout")
	fs.StringVar(&config.BackupSchedule, "k", config.BackupSchedule, "backup cron schedule")
	fs.BoolVar(&config.BackupNow, "backup-now", config.BackupNow, "export one snapshot and exit")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.CORSAllowedOrigins = splitList(*origins)
}
