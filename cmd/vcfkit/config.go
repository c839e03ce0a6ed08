package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage vcfkit configuration",
	Long:  "Show, get, or set configuration values. Config is stored in ~/.vcfkit.yaml.",
	Example: `  vcfkit config                              # show all config
  vcfkit config set output.placeholder NA    # change the missing-value text
  vcfkit config get log.level                # get a value`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := viper.AllSettings()
		if len(settings) == 0 {
			fmt.Println("# No configuration set. Config file: ~/.vcfkit.yaml")
			return nil
		}
		out, err := yaml.Marshal(settings)
		if err != nil {
			return fmt.Errorf("marshaling config: %w", err)
		}
		fmt.Print(string(out))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		switch value {
		case "true", "yes", "on":
			viper.Set(key, true)
		case "false", "no", "off":
			viper.Set(key, false)
		default:
			viper.Set(key, value)
		}

		cfgPath := viper.ConfigFileUsed()
		if cfgPath == "" {
			var err error
			if cfgPath, err = defaultConfigPath(); err != nil {
				return err
			}
		}
		if err := viper.WriteConfigAs(cfgPath); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}
		fmt.Printf("Set %s = %s in %s\n", key, value, cfgPath)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		val := viper.Get(args[0])
		if val == nil {
			return fmt.Errorf("key %q is not set", args[0])
		}
		fmt.Println(val)
		return nil
	},
}
