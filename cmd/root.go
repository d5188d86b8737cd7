package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ebradham/photo-exif-organizer/internal"
)

var Version = "dev"

// defaultDuplicateDir is what a bare --move-duplicates means on the command
// line; the config file's duplicate_dir takes over when it is left at this.
const defaultDuplicateDir = "./duplicates"

var (
	destinationFlag     string
	rerunFlag           bool
	checkDuplicatesFlag bool
	moveDuplicatesFlag  string
	tagFlag             string
	updateFolderFlag    string
	useExifTool         bool
	dryRunFlag          bool
	debugFlag           bool
)

var rootCmd = &cobra.Command{
	Use:   "photo-exif-organizer SOURCE_FOLDER...",
	Short: "Organize images into year/month folders by EXIF date and handle duplicates",
	Long: `Scans source folders for image files, determines each image's capture date
(EXIF first, file modification time as fallback) and copies it into
DESTINATION/YYYY/MM. Alternate modes report or relocate content-identical
duplicates across source folders, or retag the files of an existing folder.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := internal.SetupLogging(debugFlag); err != nil {
			return err
		}

		conf, err := internal.LoadConfig()
		if err != nil {
			return err
		}
		if useExifTool {
			conf.UseExifTool = true
		}

		destination := destinationFlag
		if destination == "" {
			destination = conf.Destination
		}

		switch {
		case updateFolderFlag != "":
			if tagFlag == "" {
				return &internal.ConfigError{Msg: "--update-folder requires --tag"}
			}
			return runTagUpdate(conf)
		case checkDuplicatesFlag:
			sources, err := accessibleSources(args)
			if err != nil {
				return err
			}
			return runDuplicates(conf, sources)
		default:
			sources, err := accessibleSources(args)
			if err != nil {
				return err
			}
			return runOrganize(conf, sources, destination)
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

// ApplyVersion re-applies the Version variable to the cobra command after
// the embedded VERSION file has been read.
func ApplyVersion() {
	rootCmd.Version = Version
}

func init() {
	rootCmd.Flags().StringVarP(&destinationFlag, "destination", "d", "", "Destination folder for organized images (default ./organized_images)")
	rootCmd.Flags().BoolVarP(&rerunFlag, "rerun", "r", false, "Skip files whose planned name already exists in the destination")
	rootCmd.Flags().BoolVarP(&checkDuplicatesFlag, "check-duplicates", "c", false, "Report content-identical duplicates without organizing")
	rootCmd.Flags().StringVarP(&moveDuplicatesFlag, "move-duplicates", "m", "", "Move duplicate files to the given directory")
	rootCmd.Flags().Lookup("move-duplicates").NoOptDefVal = defaultDuplicateDir
	rootCmd.Flags().StringVarP(&tagFlag, "tag", "t", "", "Prefix to add to filenames")
	rootCmd.Flags().StringVarP(&updateFolderFlag, "update-folder", "u", "", "Rename image files in the given folder with the tag prefix")
	rootCmd.Flags().BoolVar(&useExifTool, "exiftool", false, "Use the exiftool binary for metadata extraction")
	rootCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Show what would be done without touching any file")
	rootCmd.Flags().BoolVar(&debugFlag, "debug", false, "Enable debug logging")
}

// accessibleSources keeps the source folders that exist and are readable.
// Individual bad folders are warned about; no usable folder at all aborts
// the run before any processing.
func accessibleSources(args []string) ([]string, error) {
	if len(args) == 0 {
		return nil, &internal.ConfigError{Msg: "at least one SOURCE_FOLDER is required"}
	}
	var sources []string
	for _, folder := range args {
		info, err := os.Stat(folder)
		if err != nil || !info.IsDir() {
			fmt.Fprintf(os.Stderr, "Warning: source folder not accessible: %s\n", folder)
			logrus.Warnf("Source folder not accessible: %s", folder)
			continue
		}
		sources = append(sources, folder)
	}
	if len(sources) == 0 {
		return nil, &internal.ConfigError{Msg: "no accessible source folder"}
	}
	return sources, nil
}

// newResolver builds the capture date resolver, optionally backed by the
// exiftool binary instead of the native decoder.
func newResolver(conf *internal.Config) (*internal.Resolver, func(), error) {
	if conf.UseExifTool {
		et, err := internal.NewExifToolExtractor()
		if err != nil {
			return nil, nil, err
		}
		return &internal.Resolver{Extractor: et}, et.Close, nil
	}
	return &internal.Resolver{Extractor: internal.ExifExtractor{}}, func() {}, nil
}

func runOrganize(conf *internal.Config, sources []string, destination string) error {
	resolver, closeResolver, err := newResolver(conf)
	if err != nil {
		return err
	}
	defer closeResolver()

	if dryRunFlag {
		fmt.Println("Dry run mode: no files will be copied")
	}

	organizer := internal.NewOrganizer(conf, resolver, destination, tagFlag, rerunFlag, dryRunFlag)
	stats, err := organizer.Run(sources)
	if err != nil {
		return err
	}

	fmt.Println("\nProcessing complete!")
	fmt.Printf("Images processed: %d\n", stats.Processed)
	fmt.Printf("Duplicates found: %d\n", stats.Duplicates)
	fmt.Printf("Already in destination: %d\n", stats.AlreadyPresent)
	fmt.Printf("Files skipped: %d\n", stats.Skipped)
	fmt.Printf("Errors: %d\n", stats.Errors)
	fmt.Printf("Resource fork files removed: %d\n", stats.ForksRemoved)
	return nil
}

func runDuplicates(conf *internal.Config, sources []string) error {
	fmt.Printf("Scanning %d folder(s) for duplicate images...\n", len(sources))

	sets, err := internal.FindDuplicates(conf, sources)
	if err != nil {
		return err
	}

	if len(sets) == 0 {
		fmt.Println("No duplicates found.")
		return nil
	}

	total := 0
	for _, set := range sets {
		fmt.Printf("\nDuplicate set (hash: %.8s...)\n", set.Hash)
		fmt.Printf("  Original: %s\n", set.Files[0].Path)
		for i, ref := range set.Files[1:] {
			fmt.Printf("  Duplicate %d: %s\n", i+1, ref.Path)
			total++
		}
	}
	fmt.Printf("\nTotal duplicates found: %d\n", total)

	if moveDuplicatesFlag != "" {
		if dryRunFlag {
			fmt.Println("Dry run mode: duplicates will not be moved")
			return nil
		}
		target := moveDuplicatesFlag
		if target == defaultDuplicateDir {
			target = conf.DuplicateDir
		}
		result := internal.RelocateDuplicates(sets, target)
		fmt.Printf("Duplicates moved: %d\n", result.Moved)
		if result.Conflicts > 0 {
			fmt.Printf("Conflicts (left in place): %d\n", result.Conflicts)
		}
		if result.Errors > 0 {
			fmt.Printf("Move errors: %d\n", result.Errors)
		}
	}
	return nil
}

func runTagUpdate(conf *internal.Config) error {
	fmt.Printf("Adding prefix %q to files in %s...\n", tagFlag, updateFolderFlag)

	renamed, err := internal.AddTagPrefix(conf, updateFolderFlag, tagFlag, dryRunFlag)
	if err != nil {
		return err
	}

	fmt.Println("\nRename operation complete!")
	fmt.Printf("Files renamed: %d\n", renamed)
	return nil
}
