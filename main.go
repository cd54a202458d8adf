package main

import (
	"bytes"
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"

	"github.com/draw-ml/go-digit/canvas"
	"github.com/draw-ml/go-digit/classifier"
	"github.com/draw-ml/go-digit/inference"
	"github.com/draw-ml/go-digit/inference/providers"
	"github.com/draw-ml/go-digit/util"
)

const (
	// DefaultModelPath is the default ONNX model path.
	DefaultModelPath = "mnist.onnx"
	// DemoCanvasWidth is the demo drawing surface width (28x10).
	DemoCanvasWidth = inference.InputWidth * 10
	// DemoCanvasHeight is the demo drawing surface height (28x8).
	DemoCanvasHeight = inference.InputHeight * 8
)

func main() {
	var (
		modelPath  string
		inputName  string
		outputName string
		libPath    string
		useCoreML  bool
		imagePath  string
		imageDir   string
	)
	flag.StringVar(&modelPath, "model", DefaultModelPath, "Path to digit ONNX model file")
	flag.StringVar(&inputName, "input-name", providers.DefaultInputName, "Model input tensor name")
	flag.StringVar(&outputName, "output-name", providers.DefaultOutputName, "Model output tensor name")
	flag.StringVar(&libPath, "onnxruntime", "", "Path to ONNX Runtime shared library")
	flag.BoolVar(&useCoreML, "coreml", false, "Run through the CoreML execution provider")
	flag.StringVar(&imagePath, "image", "", "Path to a digit image file (.jpg, .jpeg, .png)")
	flag.StringVar(&imageDir, "dir", "", "Directory of digit image files to classify")
	flag.Parse()

	var provider providers.ExecutionProvider = providers.CPUProvider{}
	if useCoreML {
		provider = providers.CoreMLProvider{}
	}

	digits, err := classifier.New(classifier.Config{
		ModelPath:   modelPath,
		InputName:   inputName,
		OutputName:  outputName,
		LibraryPath: libPath,
		Provider:    provider,
	})
	if err != nil {
		log.Fatalf("Failed to load digit model: %v", err)
	}
	defer digits.Close()
	log.Printf("✅ Digit model loaded: %s", modelPath)

	switch {
	case imagePath != "":
		data, err := os.ReadFile(imagePath)
		if err != nil {
			log.Fatalf("Failed to read image: %v", err)
		}
		classifyFile(digits, imagePath, data)
	case imageDir != "":
		files, err := util.LoadDirectoryImageFiles(imageDir)
		if err != nil {
			log.Fatalf("Failed to load image directory: %v", err)
		}
		for _, file := range files {
			classifyFile(digits, file.Path, file.Data)
		}
	default:
		classifyDemoStroke(digits)
	}
}

// classifyFile decodes one image file and prints its classification.
func classifyFile(digits *classifier.Classifier, path string, data []byte) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		log.Fatalf("Failed to decode %s: %v", path, err)
	}

	result, err := digits.ClassifyImage(img)
	if err != nil {
		log.Fatalf("Failed to classify %s: %v", path, err)
	}

	fmt.Printf("%s:\n", path)
	printResult(result)
}

// classifyDemoStroke draws a rough "1" on a blank canvas and classifies the
// snapshot, exercising the stroke-finished-triggers-inference flow without a
// window.
func classifyDemoStroke(digits *classifier.Classifier) {
	surface := canvas.New(DemoCanvasWidth, DemoCanvasHeight)
	top := image.Pt(DemoCanvasWidth/2, DemoCanvasHeight/8)
	bottom := image.Pt(DemoCanvasWidth/2, DemoCanvasHeight*7/8)
	surface.Stroke(top, bottom)

	frame := surface.Snapshot()
	result, err := digits.Classify(frame.Pix, frame.Width, frame.Height)
	if err != nil {
		log.Fatalf("Failed to classify demo stroke: %v", err)
	}

	fmt.Printf("demo stroke (%dx%d canvas):\n", frame.Width, frame.Height)
	printResult(result)
}

func printResult(result inference.Result) {
	fmt.Printf("Predicted digit: %d\nProbabilities:\n", result.Class)
	for i, p := range result.Probabilities {
		fmt.Printf("  %d: %.6f\n", i, p)
	}
}
