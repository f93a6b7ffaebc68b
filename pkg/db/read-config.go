package db

import "fmt"

// DBConfigFromYamlObj converts the yaml config representation into the
// connection config used by the DB services.
func DBConfigFromYamlObj(confYaml DBConfigYaml, instanceIDs []string) DBConfig {
	prefix := confYaml.ConnectionPrefix // Used in test mode
	URI := fmt.Sprintf(`mongodb%s://%s:%s@%s`, prefix, confYaml.Username, confYaml.Password, confYaml.ConnectionStr)

	return DBConfig{
		URI:              URI,
		Timeout:          confYaml.Timeout,
		IdleConnTimeout:  confYaml.IdleConnTimeout,
		MaxPoolSize:      uint64(confYaml.MaxPoolSize),
		DBNamePrefix:     confYaml.DBNamePrefix,
		InstanceIDs:      instanceIDs,
		RunIndexCreation: confYaml.RunIndexCreation,
	}
}
