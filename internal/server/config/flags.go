package config

import (
	"flag"
	"io"
	"time"

	"github.com/Harshinireddy05/DayntTech/internal/flagx"
)

var serverFlags = []string{
	"-a", "-g", "-log", "-storage", "-d", "-l", "-k", "-s", "-t", "-hasher", "-seed",
	"-s3-user", "-s3-password", "-s3-bucket", "-s3-region", "-s3-endpoint",
}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string            HTTP bind address (e.g. ":8080")
//	-g string            gRPC bind address (e.g. ":50051")
//	-log string          log level
//	-storage string      storage backend: memory, local, postgres, s3
//	-d string            PostgreSQL DSN
//	-l string            local store directory
//	-k string            local store password
//	-s string            session token secret
//	-t int               session validity, minutes (0 = until logout)
//	-hasher string       password hasher: argon2id, bcrypt
//	-seed bool           seed placeholder people on first access (use -seed=false to disable)
//	-s3-user, -s3-password, -s3-bucket, -s3-region, -s3-endpoint
//
// Unknown arguments (such as -c) are filtered out first so that other
// parsers can share the command line.
func parseFlags(config *Config, args []string) error {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "HTTP address and port")
	fs.StringVar(&config.GRPCAddr, "g", config.GRPCAddr, "gRPC address and port")
	fs.StringVar(&config.LogLevel, "log", config.LogLevel, "log level")
	fs.StringVar(&config.StorageBackend, "storage", config.StorageBackend, "storage backend")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.LocalStoreDir, "l", config.LocalStoreDir, "local store directory")
	fs.StringVar(&config.LocalStorePassword, "k", config.LocalStorePassword, "local store password")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "session secret key")
	sessionMinutes := fs.Int("t", int(config.SessionValidityDuration.Minutes()), "session validity (in minutes, 0 = until logout)")
	fs.StringVar(&config.PasswordHasher, "hasher", config.PasswordHasher, "password hasher")
	fs.BoolVar(&config.SeedOnFirstAccess, "seed", config.SeedOnFirstAccess, "seed placeholder people on first access")

	fs.StringVar(&config.S3RootUser, "s3-user", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "s3-password", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "s3-bucket", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "s3-region", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "s3-endpoint", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(flagx.FilterArgs(args, serverFlags)); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.SessionValidityDuration = time.Duration(*sessionMinutes) * time.Minute
		}
	})
	return nil
}
