// Package config handles YAML configuration loading with environment variable substitution.
//
// Configuration files support ${VAR} syntax for environment variable interpolation,
// so database passwords can stay out of the file:
//
//	database:
//	  postgres:
//	    password: ${SILVERDASH_DB_PASSWORD}
package config
