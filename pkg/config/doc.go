// # Files
//
// Configuration is written in YAML:
//
//	model:
//	  dir: s3://models/colprof/v3
//	  classifier_file: classifier.json.zst
//	profiling:
//	  workers: 8
//	  recompute_on_reclassify: true
//	observability:
//	  log_level: debug
//
// Sections and fields left out of a file keep the values of NewDefault.
//
// # Environment Variable Substitution
//
// Any ${VAR_NAME} in the file is replaced with the value of the environment
// variable before parsing; unset variables become empty strings:
//
//	storage:
//	  s3_endpoint: ${S3_ENDPOINT}
//	  gcs_credentials_file: ${GOOGLE_APPLICATION_CREDENTIALS}
//
// The colprof CLI layers COLPROF_* environment variables and command line
// flags on top of the file.
package config
