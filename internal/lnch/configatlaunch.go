//    MultiGlossServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lnch

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/e-gun/MultiGlossServer/internal/str"
	"github.com/e-gun/MultiGlossServer/internal/vv"
	"github.com/ilyakaznacheev/cleanenv"
	"io/fs"
	"os"
	"strconv"
	"text/template"
)

var (
	Config = BuildDefaultConfig()
	Msg    = NewMessageMakerWithDefaults()
)

var ErrArgs = errors.New("bad command line")

// ConfigFilePath - "~/.config/mgs-conf.json"; a file in the working directory wins if it exists
func ConfigFilePath() string {
	local := fmt.Sprintf("%s/%s", vv.CONFIGLOCATION, vv.CONFIGBASIC)
	if _, err := os.Stat(local); err == nil {
		return local
	}
	uh, _ := os.UserHomeDir()
	return fmt.Sprintf(vv.CONFIGALTAPTH, uh) + vv.CONFIGBASIC
}

// ConfigAtLaunch - defaults, then the config file and MGS_* environment variables, then the command line
func ConfigAtLaunch() {
	const (
		FAIL1 = "Could not parse your information as a valid collection of credentials. Use the following template:"
		FAIL2 = `"{\"Pass\": \"YOURPASSWORDHERE\" ,\"Host\": \"127.0.0.1\", \"Port\": 5432, \"DBName\": \"multiglossDB\" ,\"User\": \"mgs_rd\"}"`
		FAIL3 = "Could not parse the information in '%s'. Skipping and attempting to use built-in defaults instead."
		FAIL4 = "A minimal '%s' looks like this:"
		LOADD = "'%s' loaded"
		NOTLD = "'%s' not found; using built-in defaults"
	)

	Config = BuildDefaultConfig()
	cf := ConfigFilePath()

	found, err := ReadConfigFile(Config, cf)
	switch {
	case err != nil:
		Msg.CRIT(fmt.Sprintf(FAIL3, cf))
		Msg.CRIT(fmt.Sprintf(FAIL4, vv.CONFIGBASIC))
		fmt.Print(vv.MINCONFIG)
		Config = BuildDefaultConfig()
	case found:
		Msg.TMI(fmt.Sprintf(LOADD, cf))
	default:
		Msg.TMI(fmt.Sprintf(NOTLD, cf))
	}

	args := os.Args[1:]

	for _, a := range args {
		switch a {
		case "-vv":
			PrintVersion(*Config)
			PrintBuildInfo(*Config)
			os.Exit(1)
		case "-v":
			fmt.Println(vv.VERSION + VersSuppl)
			os.Exit(1)
		case "-h":
			PrintVersion(*Config)
			PrintBuildInfo(*Config)
			fmt.Println(Msg.ColStyle(HelpText(*Config)))
			os.Exit(0)
		}
	}

	if err = ApplyArgs(Config, args); err != nil {
		if errors.Is(err, errpglogin) {
			Msg.MAND(FAIL1)
			Msg.CRIT(FAIL2)
		}
		Msg.EC(err)
	}
}

// BuildDefaultConfig - return a CurrentConfiguration filled out with various default values
func BuildDefaultConfig() *str.CurrentConfiguration {
	var c str.CurrentConfiguration
	c.BlackAndWhite = vv.BLACKANDWHITE
	c.CustomCSS = false
	c.DocDir = vv.DEFAULTDOCDIR
	c.EchoLog = vv.DEFAULTECHOLOGLEVEL
	c.Footnotes = vv.FOOTNOTESON
	c.Gzip = vv.USEGZIP
	c.HostIP = vv.SERVEDFROMHOST
	c.HostPort = vv.SERVEDFROMPORT
	c.LogLevel = vv.DEFAULTGOLOGLEVEL
	c.ManualGC = false
	c.PGDocs = false
	c.ProfileCPU = false
	c.ProfileMEM = false
	c.QuietStart = false
	c.TickerActive = vv.TICKERISACTIVE
	c.WarnMorphs = false

	c.PGLogin = str.PostgresLogin{
		Host:   vv.DEFAULTPSQLHOST,
		Port:   vv.DEFAULTPSQLPORT,
		User:   vv.DEFAULTPSQLUSER,
		Pass:   "",
		DBName: vv.DEFAULTPSQLDB,
	}
	return &c
}

// ReadConfigFile - overlay the JSON file at path and then the MGS_* environment onto cfg; a missing file only reads the environment
func ReadConfigFile(cfg *str.CurrentConfiguration, path string) (bool, error) {
	_, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, cleanenv.ReadEnv(cfg)
	}
	if err != nil {
		return false, err
	}
	if err = cleanenv.ReadConfig(path, cfg); err != nil {
		return true, fmt.Errorf("%s: %w", path, err)
	}
	return true, nil
}

var errpglogin = errors.New("could not parse PostgreSQL credentials")

// ApplyArgs - the single-dash flags; the informational ones (-h, -v, -vv) are handled by ConfigAtLaunch
func ApplyArgs(cfg *str.CurrentConfiguration, args []string) error {
	const (
		MISSING = "%w: '%s' needs a value"
		NOTINT  = "%w: '%s' needs a number, not '%s'"
		ONEPROF = "%w: '-pc' and '-pm' cannot be used together"
	)

	for i := 0; i < len(args); i++ {
		a := args[i]

		val := func() (string, error) {
			if i+1 >= len(args) {
				return "", fmt.Errorf(MISSING, ErrArgs, a)
			}
			i++
			return args[i], nil
		}

		num := func() (int, error) {
			v, err := val()
			if err != nil {
				return 0, err
			}
			n, err := strconv.Atoi(v)
			if err != nil {
				return 0, fmt.Errorf(NOTINT, ErrArgs, a, v)
			}
			return n, nil
		}

		var err error
		switch a {
		case "-bw":
			cfg.BlackAndWhite = true
		case "-cs":
			cfg.CustomCSS = true
		case "-dd":
			cfg.DocDir, err = val()
		case "-doc":
			var d string
			if d, err = val(); err == nil {
				cfg.Docs = append(cfg.Docs, d)
			}
		case "-el":
			cfg.EchoLog, err = num()
		case "-ex":
			cfg.Export, err = val()
		case "-fn":
			cfg.Footnotes = false
		case "-gl":
			cfg.LogLevel, err = num()
		case "-gz":
			cfg.Gzip = true
		case "-pc":
			cfg.ProfileCPU = true
		case "-pd":
			cfg.PGDocs = true
		case "-pg":
			var js string
			if js, err = val(); err == nil {
				var pl str.PostgresLogin
				if json.Unmarshal([]byte(js), &pl) != nil {
					err = fmt.Errorf("%w: %w", ErrArgs, errpglogin)
				} else {
					cfg.PGLogin = pl
				}
			}
		case "-pm":
			cfg.ProfileMEM = true
		case "-q":
			cfg.QuietStart = true
		case "-sa":
			cfg.HostIP, err = val()
		case "-sp":
			cfg.HostPort, err = num()
		case "-sq":
			cfg.SQLiteDB, err = val()
		case "-ss":
			cfg.StoreTo, err = val()
		case "-tk":
			cfg.TickerActive = true
		case "-wm":
			cfg.WarnMorphs = true
		default:
			// do nothing
		}
		if err != nil {
			return err
		}
	}

	// only one profile can run at a time; the config file may have set either
	if cfg.ProfileCPU && cfg.ProfileMEM {
		return fmt.Errorf(ONEPROF, ErrArgs)
	}
	return nil
}

// HelpText - the "-h" output, still carrying its color pseudo-tags
func HelpText(cc str.CurrentConfiguration) string {
	const (
		FAIL = "HelpText() failed to execute help text template"
	)

	uh, _ := os.UserHomeDir()
	h := fmt.Sprintf(vv.CONFIGALTAPTH, uh)

	m := map[string]interface{}{
		"conffile":  vv.CONFIGBASIC,
		"css":       vv.CUSTOMCSSFILENAME,
		"docdir":    cc.DocDir,
		"echoll":    cc.EchoLog,
		"footnotes": cc.Footnotes,
		"home":      h,
		"host":      cc.HostIP,
		"mgsll":     cc.LogLevel,
		"port":      cc.HostPort,
		"projurl":   vv.PROJURL,
	}

	t := template.Must(template.New("").Parse(vv.HELPTEXTTEMPLATE))

	var b bytes.Buffer
	if err := t.Execute(&b, m); err != nil {
		Msg.CRIT(FAIL)
	}
	return b.String()
}
