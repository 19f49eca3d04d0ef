package sources

import "context"

// sampleDocument mirrors the public price sheets of the large hosted
// providers (USD per 1M tokens, as of early 2026) so the explorer
// renders a useful catalog before any real source is configured.
const sampleDocument = `[
  {
    "provider": "OpenAI",
    "model_id": "gpt-4.1",
    "model_name": "GPT-4.1",
    "context_length": 1047576,
    "availability": "public",
    "pricing": {
      "standard": {
        "input": {"price_per_million_tokens": 2.0},
        "output": {"price_per_million_tokens": 8.0}
      },
      "batch": {
        "input": {"price_per_million_tokens": 1.0},
        "output": {"price_per_million_tokens": 4.0}
      }
    }
  },
  {
    "provider": "OpenAI",
    "model_id": "gpt-4.1-mini",
    "model_name": "GPT-4.1 mini",
    "context_length": 1047576,
    "availability": "public",
    "pricing": {
      "standard": {
        "input": {"price_per_million_tokens": 0.4},
        "output": {"price_per_million_tokens": 1.6}
      },
      "batch": {
        "input": {"price_per_million_tokens": 0.2},
        "output": {"price_per_million_tokens": 0.8}
      }
    }
  },
  {
    "provider": "OpenAI",
    "model_id": "gpt-4o",
    "model_name": "GPT-4o",
    "context_length": 128000,
    "availability": "public",
    "pricing": {
      "standard": {
        "input": {"price_per_million_tokens": 2.5},
        "output": {"price_per_million_tokens": 10.0}
      },
      "batch": {
        "input": {"price_per_million_tokens": 1.25},
        "output": {"price_per_million_tokens": 5.0}
      }
    }
  },
  {
    "provider": "OpenAI",
    "model_id": "o3",
    "model_name": "o3",
    "context_length": 200000,
    "availability": "public",
    "pricing": {
      "standard": {
        "input": {"price_per_million_tokens": 10.0},
        "output": {"price_per_million_tokens": 40.0}
      },
      "batch": {
        "input": {"price_per_million_tokens": 5.0},
        "output": {"price_per_million_tokens": 20.0}
      }
    }
  },
  {
    "provider": "OpenAI",
    "model_id": "o4-mini",
    "model_name": "o4-mini",
    "context_length": 200000,
    "availability": "public",
    "pricing": {
      "standard": {
        "input": {"price_per_million_tokens": 1.1},
        "output": {"price_per_million_tokens": 4.4}
      }
    }
  },
  {
    "provider": "OpenAI",
    "model_id": "text-embedding-3-small",
    "model_name": "Text Embedding 3 Small",
    "context_length": 8191,
    "availability": "public",
    "pricing": {
      "standard": {
        "input": {"price_per_million_tokens": 0.02},
        "output": {"price_per_million_tokens": 0.0}
      }
    }
  },
  {
    "provider": "OpenAI",
    "model_id": "gpt-4o-audio-preview",
    "model_name": "GPT-4o Audio",
    "context_length": 128000,
    "availability": "preview",
    "pricing": {
      "standard": {
        "input": {"price_per_million_tokens": 2.5},
        "output": {"price_per_million_tokens": 10.0}
      }
    }
  },
  {
    "provider": "Anthropic",
    "model_id": "claude-sonnet-4-5",
    "model_name": "Claude Sonnet 4.5",
    "context_length": 200000,
    "availability": "public",
    "pricing": {
      "standard": {
        "input": {"price_per_million_tokens": 3.0},
        "output": {"price_per_million_tokens": 15.0}
      },
      "batch": {
        "input": {"price_per_million_tokens": 1.5},
        "output": {"price_per_million_tokens": 7.5}
      }
    }
  },
  {
    "provider": "Anthropic",
    "model_id": "claude-haiku-4-5",
    "model_name": "Claude Haiku 4.5",
    "context_length": 200000,
    "availability": "public",
    "pricing": {
      "standard": {
        "input": {"price_per_million_tokens": 1.0},
        "output": {"price_per_million_tokens": 5.0}
      },
      "batch": {
        "input": {"price_per_million_tokens": 0.5},
        "output": {"price_per_million_tokens": 2.5}
      }
    }
  },
  {
    "provider": "Anthropic",
    "model_id": "claude-opus-4-1",
    "model_name": "Claude Opus 4.1",
    "context_length": 200000,
    "availability": "public",
    "pricing": {
      "standard": {
        "input": {"price_per_million_tokens": 15.0},
        "output": {"price_per_million_tokens": 75.0}
      },
      "batch": {
        "input": {"price_per_million_tokens": 7.5},
        "output": {"price_per_million_tokens": 37.5}
      }
    }
  },
  {
    "provider": "Google",
    "model_id": "gemini-2.5-pro",
    "model_name": "Gemini 2.5 Pro",
    "context_length": 1048576,
    "availability": "public",
    "pricing": {
      "standard": {
        "input": {"price_per_million_tokens": 1.25},
        "output": {"price_per_million_tokens": 10.0}
      },
      "batch": {
        "input": {"price_per_million_tokens": 0.625},
        "output": {"price_per_million_tokens": 5.0}
      }
    }
  },
  {
    "provider": "Google",
    "model_id": "gemini-2.5-flash",
    "model_name": "Gemini 2.5 Flash",
    "context_length": 1048576,
    "availability": "public",
    "pricing": {
      "standard": {
        "input": {"price_per_million_tokens": 0.3},
        "output": {"price_per_million_tokens": 2.5}
      }
    }
  },
  {
    "provider": "Mistral",
    "model_id": "mistral-large-latest",
    "model_name": "Mistral Large",
    "context_length": 128000,
    "availability": "public",
    "currency": "EUR",
    "pricing": {
      "standard": {
        "input": {"price_per_million_tokens": 1.8},
        "output": {"price_per_million_tokens": 5.4}
      }
    }
  },
  {
    "provider": "DeepSeek",
    "model_id": "deepseek-chat",
    "model_name": "DeepSeek V3",
    "context_length": 128000,
    "availability": "public",
    "pricing": {
      "standard": {
        "input": {"price_per_million_tokens": 0.27},
        "output": {"price_per_million_tokens": 1.1}
      }
    }
  },
  {
    "provider": "xAI",
    "model_id": "grok-4",
    "model_name": "Grok 4",
    "context_length": 256000,
    "availability": "public",
    "pricing": {
      "standard": {
        "input": {"price_per_million_tokens": 3.0},
        "output": {"price_per_million_tokens": 15.0}
      }
    }
  },
  {
    "provider": "xAI",
    "model_id": "grok-4-heavy-preview",
    "model_name": "Grok 4 Heavy",
    "context_length": "1m",
    "availability": "waitlist"
  },
  {
    "provider": "OpenRouter",
    "model_id": "meta-llama/llama-3.3-8b-instruct:free",
    "model_name": "Llama 3.3 8B (free tier)",
    "context_length": 131072,
    "availability": "public",
    "pricing": {
      "standard": {
        "input": {"price_per_million_tokens": 0.0},
        "output": {"price_per_million_tokens": 0.0}
      }
    }
  },
  {
    "provider": "Ollama",
    "model_name": "Llama 3.1 8B (local)",
    "availability": "local",
    "pricing": {
      "standard": {
        "input": {"price_per_million_tokens": 0.0},
        "output": {"price_per_million_tokens": 0.0}
      }
    }
  }
]
`

// SampleSource serves the price list bundled with the binary.
type SampleSource struct {
	id string
}

func NewSampleSource() *SampleSource {
	return &SampleSource{id: "sample"}
}

func (s *SampleSource) ID() string { return s.id }

func (s *SampleSource) Describe() Info {
	return Info{Name: "Built-in sample", Kind: KindBuiltin, Origin: "embedded"}
}

func (s *SampleSource) Fetch(ctx context.Context) ([]byte, error) {
	return []byte(sampleDocument), nil
}
