package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// jsonClientConfig mirrors [ClientConfig] with [Duration] fields so duration
// values can be written as strings like "30s" or "5m" in the file.
type jsonClientConfig struct {
	Adapter struct {
		BaseURL        string   `json:"base_url"`
		Username       string   `json:"username"`
		Password       string   `json:"password"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Sync struct {
		Interval Duration `json:"interval"`
		Programs []string `json:"programs"`
	} `json:"sync,omitempty"`
}

func parseJSON(jsonFilePath string) (*ClientConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg jsonClientConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &ClientConfig{
		Adapter: ClientAdapter{
			BaseURL:        jsonCfg.Adapter.BaseURL,
			Username:       jsonCfg.Adapter.Username,
			Password:       jsonCfg.Adapter.Password,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Sync: ClientSync{
			Interval: time.Duration(jsonCfg.Sync.Interval),
			Programs: jsonCfg.Sync.Programs,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s".
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
