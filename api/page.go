package api

// pageTemplate renders the widget once on the server; the script then
// keeps it current by polling /api/view every second
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Weather And Time</title>
<style>
  body { margin: 0; font-family: sans-serif; }
  .weather-box { min-height: 100vh; background-size: cover; background-repeat: no-repeat; }
  .weather-container { max-width: 32rem; margin: 0 auto; padding: 2rem; background: rgba(255,255,255,0.8); }
  .forecast-day { border-top: 1px solid #ccc; padding: 0.25rem 0; }
</style>
</head>
<body>
<div id="box" class="weather-box" style="background-image: url('{{.Background}}')">
  <div class="weather-container">
    <h1>Weather And Time</h1>
    <p id="message">{{.Message}}</p>
    <p><strong>Date:</strong> <span id="date">{{.Date}}</span><br>
       <strong>Time:</strong> <span id="time">{{.Time}}</span></p>

    <input id="city" type="text" placeholder="Enter city name" value="{{.Query}}">
    <br>
    <button id="get-weather" class="get-weather-button">Get Weather and Time</button>

    <div id="info" class="info"{{if not .Location}} hidden{{end}}>
      <h2><strong id="location">{{.Location}}</strong></h2>
      <p><span id="description">{{.Description}}</span> <span id="condition-icon">{{.ConditionIcon}}</span></p>
      <p>Temperature: <span id="celsius">{{.Celsius}}</span> °C <span id="temperature-icon">{{.TemperatureIcon}}</span></p>
    </div>

    <div id="forecast"{{if not .Forecast}} hidden{{end}}>
      <h2>Future Weather</h2>
      <div id="forecast-days">
      {{range .Forecast}}
        <div class="forecast-day">
          <p>Date: {{.Date}}</p>
          <p>Temperature: {{.Celsius}} °C</p>
          <p>{{.Description}} {{.Icon}}</p>
        </div>
      {{end}}
      </div>
    </div>
  </div>
</div>
<script>
(function () {
  var zone = "";
  try {
    zone = Intl.DateTimeFormat().resolvedOptions().timeZone || "";
  } catch (e) {}

  function withZone(path) {
    return zone ? path + "?tz=" + encodeURIComponent(zone) : path;
  }

  function text(id, value) {
    document.getElementById(id).textContent = value || "";
  }

  function render(view) {
    document.getElementById("box").style.backgroundImage = "url('" + view.background + "')";
    text("message", view.message);
    text("date", view.date);
    text("time", view.time);

    var info = document.getElementById("info");
    info.hidden = !view.location;
    text("location", view.location);
    text("description", view.description);
    text("condition-icon", view.conditionIcon);
    text("celsius", view.celsius);
    text("temperature-icon", view.temperatureIcon);

    var forecast = document.getElementById("forecast");
    var days = document.getElementById("forecast-days");
    forecast.hidden = !view.forecast;
    days.replaceChildren();
    (view.forecast || []).forEach(function (day) {
      var row = document.createElement("div");
      row.className = "forecast-day";
      [
        "Date: " + day.date,
        "Temperature: " + day.celsius + " °C",
        day.description + " " + (day.icon || "")
      ].forEach(function (line) {
        var p = document.createElement("p");
        p.textContent = line;
        row.appendChild(p);
      });
      days.appendChild(row);
    });
  }

  function post(path, body) {
    return fetch(withZone(path), {
      method: "POST",
      headers: { "Content-Type": "application/json" },
      body: body ? JSON.stringify(body) : null
    });
  }

  function refresh() {
    fetch(withZone("/api/view")).then(function (resp) { return resp.json(); }).then(render);
  }

  document.getElementById("city").addEventListener("input", function (e) {
    post("/api/query", { city: e.target.value })
      .then(function (resp) { return resp.json(); }).then(render);
  });

  // every blank click is answered with 422 and must show the prompt
  document.getElementById("get-weather").addEventListener("click", function () {
    post("/api/fetch").then(function (resp) {
      return resp.json().then(function (view) {
        render(view);
        if (resp.status === 422) {
          alert(view.prompt);
        }
      });
    });
  });

  refresh();
  setInterval(refresh, 1000);
})();
</script>
</body>
</html>
`
