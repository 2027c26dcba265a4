package dataobjects

import (
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/gbl08ma/sqalx"

	"github.com/trucklog/hosd/compliance"
	"github.com/trucklog/hosd/types"
)

// RuleConfig is a persisted override of a compliance rule
type RuleConfig struct {
	ID          string
	Name        string
	Description string
	Severity    types.Severity
	Enabled     bool
	Parameters  map[string]float64
}

// GetRuleConfigs returns a slice with all persisted rule configurations
func GetRuleConfigs(node sqalx.Node) ([]*RuleConfig, error) {
	configs := []*RuleConfig{}

	tx, err := node.Beginx()
	if err != nil {
		return configs, err
	}
	defer tx.Commit() // read-only tx

	rows, err := sdb.Select("id", "name", "description", "severity", "enabled", "parameters").
		From("hos_rule").
		OrderBy("id ASC").
		RunWith(tx).Query()
	if err != nil {
		return configs, fmt.Errorf("GetRuleConfigs: %s", err)
	}
	defer rows.Close()

	for rows.Next() {
		var config RuleConfig
		var parameters []byte
		err := rows.Scan(
			&config.ID,
			&config.Name,
			&config.Description,
			&config.Severity,
			&config.Enabled,
			&parameters)
		if err != nil {
			return configs, fmt.Errorf("GetRuleConfigs: %s", err)
		}
		config.Parameters = make(map[string]float64)
		err = json.Unmarshal(parameters, &config.Parameters)
		if err != nil {
			return configs, fmt.Errorf("GetRuleConfigs: %s", err)
		}
		configs = append(configs, &config)
	}
	if err := rows.Err(); err != nil {
		return configs, fmt.Errorf("GetRuleConfigs: %s", err)
	}
	return configs, nil
}

// LoadRegistry registers all persisted rule configurations on top of the
// registry's defaults
func LoadRegistry(node sqalx.Node, registry *compliance.Registry) error {
	configs, err := GetRuleConfigs(node)
	if err != nil {
		return fmt.Errorf("LoadRegistry: %s", err)
	}
	for _, config := range configs {
		registry.Register(types.Rule{
			ID:          config.ID,
			Name:        config.Name,
			Description: config.Description,
			Severity:    config.Severity,
			Enabled:     config.Enabled,
			Parameters:  config.Parameters,
		})
	}
	return nil
}

// Update adds or updates the rule configuration
func (config *RuleConfig) Update(node sqalx.Node) error {
	tx, err := node.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	parameters, err := json.Marshal(config.Parameters)
	if err != nil {
		return fmt.Errorf("AddRuleConfig: %s", err)
	}

	_, err = sdb.Insert("hos_rule").
		Columns("id", "name", "description", "severity", "enabled", "parameters").
		Values(config.ID, config.Name, config.Description, config.Severity, config.Enabled, parameters).
		Suffix("ON CONFLICT (id) DO UPDATE SET name = ?, description = ?, severity = ?, enabled = ?, parameters = ?",
			config.Name, config.Description, config.Severity, config.Enabled, parameters).
		RunWith(tx).Exec()
	if err != nil {
		return fmt.Errorf("AddRuleConfig: %s", err)
	}
	return tx.Commit()
}

// Delete deletes the rule configuration
func (config *RuleConfig) Delete(node sqalx.Node) error {
	tx, err := node.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = sdb.Delete("hos_rule").
		Where(sq.Eq{"id": config.ID}).RunWith(tx).Exec()
	if err != nil {
		return fmt.Errorf("RemoveRuleConfig: %s", err)
	}
	return tx.Commit()
}
